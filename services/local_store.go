package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var _ ImageStore = (*LocalStore)(nil)

// LocalStore keeps images on disk under Root and serves them from URLPrefix.
// It is used when no storage bucket is configured.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root string, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Root: root, URLPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (ls *LocalStore) pathOf(blobName string) (string, error) {
	clean := path.Clean("/" + blobName)
	if clean == "/" {
		return "", errors.New("empty blob name")
	}
	return filepath.Join(ls.Root, filepath.FromSlash(clean)), nil
}

func (ls *LocalStore) Put(ctx context.Context, blobName string, contentType string, content io.Reader) error {
	target, err := ls.pathOf(blobName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	file, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (ls *LocalStore) Delete(ctx context.Context, blobName string) error {
	if len(blobName) == 0 {
		return nil
	}
	target, err := ls.pathOf(blobName)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (ls *LocalStore) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	target, err := ls.pathOf(blobName)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (ls *LocalStore) URL(blobName string) string {
	return ls.URLPrefix + "/" + blobName
}
