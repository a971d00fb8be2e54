package testutil

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
)

const InvalidToken = "invalid"

// FakeSessionAuth accepts any ID token except InvalidToken. The token and the
// session cookie are both the firebase UID itself.
type FakeSessionAuth struct{}

func (FakeSessionAuth) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" || idToken == InvalidToken {
		return nil, errors.New("invalid id token")
	}
	return &auth.Token{UID: idToken}, nil
}

func (FakeSessionAuth) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	if idToken == "" || idToken == InvalidToken {
		return "", errors.New("invalid id token")
	}
	return idToken, nil
}

func (FakeSessionAuth) VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error) {
	if sessionCookie == "" || sessionCookie == InvalidToken {
		return nil, errors.New("invalid session cookie")
	}
	return &auth.Token{UID: sessionCookie}, nil
}

// MemoryImageStore keeps images in a map
type MemoryImageStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{blobs: make(map[string][]byte)}
}

func (ms *MemoryImageStore) Put(ctx context.Context, blobName string, contentType string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.blobs[blobName] = data
	return nil
}

func (ms *MemoryImageStore) Delete(ctx context.Context, blobName string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.blobs, blobName)
	return nil
}

func (ms *MemoryImageStore) Exists(ctx context.Context, blobName string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.blobs[blobName]
	return ok, nil
}

func (ms *MemoryImageStore) URL(blobName string) string {
	return "/media/" + blobName
}

func (ms *MemoryImageStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.blobs)
}
