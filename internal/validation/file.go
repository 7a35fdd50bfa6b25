package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// DocumentConstraints covers goal attachments: PDFs, images and plain text notes.
var DocumentConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"application/pdf":           true,
		"image/jpeg":                true,
		"image/png":                 true,
		"image/webp":                true,
		"text/plain; charset=utf-8": true,
	},
	AllowedExtensions: map[string]bool{
		".pdf":  true,
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".txt":  true,
		".md":   true,
	},
	MaxSize: 10 << 20, // 10MB
}

// WithMaxSize returns a copy of c with a different size limit.
func (c FileConstraints) WithMaxSize(size int64) FileConstraints {
	c.MaxSize = size
	return c
}

// ValidateFile checks size, sniffed content type and extension of an upload.
// It returns the detected MIME type.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) (string, error) {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return "", fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	if header.Size == 0 {
		return "", fmt.Errorf("file is empty")
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads max 512 bytes to determine MIME type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Magic numbers cannot be faked by changing the Content-Type header
	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return "", fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return "", fmt.Errorf("invalid file extension: %s", ext)
	}

	return detectedType, nil
}
