package storage

import (
	"context"
	"io"
)

// UploadResult identifies a stored snapshot object.
type UploadResult struct {
	Key      string
	Location string
}

// SnapshotUploader is the object-storage seam for league snapshot exports.
// The export service uploads a fresh CSV, deletes the superseded one by
// key, and hands the public URL to clients.
type SnapshotUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
