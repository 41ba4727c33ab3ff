package domain

import (
	"context"
	"time"
)

// FileRef points at a stored blob (resume, company logo)
type FileRef struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

// UploadFile carries an in-memory multipart upload from handler to usecase
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FileStorage is the blob storage collaborator (S3-compatible)
type FileStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*FileRef, error)
	Delete(ctx context.Context, key string) error
}
