package port

import (
	"context"
	"io"
)

// UploadInput carries one invoice document into object storage. Key is
// derived from the invoice record (category and ID), so the document can be
// located again without storing the key.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where the stored document landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the document store holding uploaded invoices.
// GetPresignedURL produces a time-limited download link for reviewers.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
