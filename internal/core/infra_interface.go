package core

import (
	"context"
	"io"

	"github.com/markdave123-py/TypeSpark/internal/models"
)

// UploadStore keeps uploaded documents on a filesystem the extractors can open by path.
type UploadStore interface {
	Save(ctx context.Context, filename string, data io.Reader) (path string, err error)
	Stats(limit int) (models.StorageStats, error)
	Dir() string
}

// ObjectClient defines interactions with S3 or any object storage.
// Uploaded documents are archived through it when enabled.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
}
