package mediastore

import (
	"context"
	"io"
)

// UploadOptions controls where and how a buffer is stored.
type UploadOptions struct {
	// Folder is the logical folder prefix of the object key
	Folder string
	// PublicID is the object name within the folder
	PublicID string
	// ContentType of the uploaded data
	ContentType string
	// ResizeLimit asks the store to cap image dimensions, e.g. "800x800".
	// Stores that cannot transform record the request as object metadata.
	ResizeLimit string
	// Quality asks for a quality setting, e.g. "auto"
	Quality string
}

// UploadResult is what callers persist after a successful upload.
type UploadResult struct {
	// URL is the public URL of the stored object
	URL string
	// PublicID is the store-internal reference (the full object key)
	PublicID string
	// Bytes is the stored object size
	Bytes int64
}

// Uploader sends an in-memory buffer to a media store and returns its public
// URL and internal reference.
type Uploader interface {
	Upload(ctx context.Context, reader io.Reader, size int64, opts UploadOptions) (*UploadResult, error)
}
