package domain

import (
	"context"
	"io"
)

// Upload is a file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileStore stores uploaded files and returns a public URL for them.
type FileStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
