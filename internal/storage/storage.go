// Package storage provides temporary artifacts for tool output and optional
// S3 publishing of generated thumbnails. It defines the Storage interface
// (port) and implementations for local disk and S3.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for temporary and persistent file storage.
type Storage interface {
	// CreateTemp creates a uniquely named, empty temporary file whose name
	// starts with name and ends with ext. The caller must Release it.
	CreateTemp(ctx context.Context, name, ext string) (*Artifact, error)

	// LoadTemp opens a temporary file for reading.
	// The caller is responsible for closing the returned ReadCloser.
	LoadTemp(ctx context.Context, path string) (io.ReadCloser, error)

	// ListTemp returns the temporary files whose base names match any of
	// the given glob patterns.
	ListTemp(ctx context.Context, patterns ...string) ([]string, error)

	// CleanupTemp removes the specified temporary files.
	// It continues cleanup even if some files fail to delete.
	CleanupTemp(ctx context.Context, paths []string) error

	// Upload stores data under key and returns its public URL.
	// Returns ErrS3NotConfigured if no remote store is configured.
	Upload(ctx context.Context, key, contentType string, data io.Reader) (url string, err error)
}
