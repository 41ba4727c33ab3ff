package upload_test

import (
	"testing"

	"go-jobportal-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
)

var (
	pdfBytes  = []byte("%PDF-1.7 rest of the document")
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}
)

func TestValidate(t *testing.T) {
	t.Run("Should accept a real PDF resume", func(t *testing.T) {
		result := upload.Validate("resume.pdf", pdfBytes, upload.ResumeExtensions)
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
		assert.Empty(t, result.Error)
	})

	t.Run("Should accept a PNG logo", func(t *testing.T) {
		result := upload.Validate("logo.PNG", pngBytes, upload.LogoExtensions)
		assert.True(t, result.Valid)
		assert.Equal(t, ".png", result.Extension)
	})

	t.Run("Should reject a file without extension", func(t *testing.T) {
		result := upload.Validate("resume", pdfBytes, upload.ResumeExtensions)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "no extension")
	})

	t.Run("Should reject extensions outside the whitelist", func(t *testing.T) {
		result := upload.Validate("resume.exe", pdfBytes, upload.ResumeExtensions)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "not allowed")
	})

	t.Run("Should reject an image posing as a resume", func(t *testing.T) {
		result := upload.Validate("logo.png", pngBytes, upload.ResumeExtensions)
		assert.False(t, result.Valid)
	})

	t.Run("Should reject spoofed content behind a pdf extension", func(t *testing.T) {
		result := upload.Validate("resume.pdf", jpegBytes, upload.ResumeExtensions)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "does not match extension")
	})

	t.Run("Should reject files too small to carry a signature", func(t *testing.T) {
		result := upload.Validate("resume.pdf", []byte{0x25}, upload.ResumeExtensions)
		assert.False(t, result.Valid)
	})
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", upload.ContentTypeFor(".pdf"))
	assert.Equal(t, "image/jpeg", upload.ContentTypeFor(".jpg"))
	assert.Equal(t, "image/jpeg", upload.ContentTypeFor(".jpeg"))
	assert.Equal(t, "application/octet-stream", upload.ContentTypeFor(".xyz"))
}
