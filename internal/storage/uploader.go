package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// FileUploader streams a file to the external media host.
type FileUploader interface {
	Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) (*UploadResult, error)
}
