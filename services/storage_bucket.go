package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// ImageStore keeps uploaded post images, addressed by blob name
type ImageStore interface {
	Put(ctx context.Context, blobName string, contentType string, content io.Reader) error
	Delete(ctx context.Context, blobName string) error
	Exists(ctx context.Context, blobName string) (bool, error)
	URL(blobName string) string
}

var _ ImageStore = (*StorageBucket)(nil)

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		name:         bucketName,
	}, nil
}

func (sb *StorageBucket) Put(ctx context.Context, blobName string, contentType string, content io.Reader) error {
	writer := sb.Object(blobName).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()
		return fmt.Errorf("failed to upload %v: %w", blobName, err)
	}
	return writer.Close()
}

// Delete removes the blob. A blob that is already gone is not an error.
func (sb *StorageBucket) Delete(ctx context.Context, blobName string) error {
	if len(blobName) == 0 {
		return nil
	}
	if err := sb.Object(blobName).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (sb *StorageBucket) URL(blobName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, blobName)
}
