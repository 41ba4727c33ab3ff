package upload

import (
	"bytes"
	"path/filepath"
	"strings"
)

// ValidationResult contains the outcome of upload validation
type ValidationResult struct {
	Valid     bool
	Extension string
	Error     string
}

// Magic byte signatures per extension. Content must match the claimed
// extension to stop spoofed uploads.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
}

// ResumeExtensions is the whitelist for resume uploads
var ResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// LogoExtensions is the whitelist for company logo uploads
var LogoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Validate checks the filename extension against the given whitelist and the
// file content against the extension's magic bytes.
func Validate(filename string, data []byte, allowed map[string]bool) ValidationResult {
	result := ValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowed[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !matchesMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	result.Valid = true
	return result
}

func matchesMagicBytes(ext string, data []byte) bool {
	signatures, ok := magicBytes[ext]
	if !ok || len(signatures) == 0 {
		return false
	}
	if len(data) < 4 {
		return false
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ContentTypeFor maps a validated extension to the MIME type stored alongside
// the blob.
func ContentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
