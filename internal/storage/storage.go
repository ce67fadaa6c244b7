package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored attachment. Key is the object key
// actually written, so callers can reference or delete the object
// later.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
	Key      string `json:"-"`
}

// ObjectStorage validates and persists task attachments.
type ObjectStorage interface {
	// Upload streams the attachment into the bucket under
	// tasks/{taskID}/{millis}-{filename}. The policy checks run
	// before any network call.
	Upload(ctx context.Context, reader io.Reader, size int64, taskID uint, filename, mimeType string) (*UploadResult, error)

	// Delete removes a stored object. Missing objects or buckets are
	// treated as success so deletes stay idempotent.
	Delete(ctx context.Context, key string) error
}
