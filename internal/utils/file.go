package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedDocumentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ValidateDocumentFile accepts identity document scans and photos up to maxSize bytes.
func ValidateDocumentFile(file *multipart.FileHeader, maxSize int64) error {
	if file.Size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if maxSize > 0 && file.Size > maxSize {
		return fmt.Errorf("file exceeds the %d MB limit", maxSize/(1<<20))
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedDocumentTypes[contentType]; !ok {
		return fmt.Errorf("file type not allowed: %s", contentType)
	}

	return nil
}

// ObjectKey builds a unique storage key under folder, keeping the original extension.
func ObjectKey(folder, originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = allowedDocumentTypes[contentType]
	}
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if folder == "" {
		return name
	}
	return strings.TrimRight(folder, "/") + "/" + name
}
