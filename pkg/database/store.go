package database

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by Get when no document exists under the key.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrQuotaExceeded is returned by Put when the store refuses a write because of its size limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// DocumentStore keeps whole JSON documents under string keys.
// Get and Put are individually atomic; a Get followed by a Put is not.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Ping(ctx context.Context) error
	Close() error
}
