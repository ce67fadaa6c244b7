package storage

import (
	"path/filepath"
	"strings"

	apperrors "task-manager-system.com/task-manager-system/internal/errors"
)

const MaxFileSize = 5 * 1024 * 1024 // 5MB

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ValidateFile enforces the attachment policy. Each check is
// independent, so a spoofed MIME type never bypasses the extension
// check and vice versa.
func ValidateFile(size int64, filename, mimeType string) error {
	if size > MaxFileSize {
		return apperrors.FileTooLarge(size)
	}

	if !allowedMimeTypes[mimeType] {
		return apperrors.UnsupportedFileType(mimeType)
	}

	extension := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[extension] {
		return apperrors.InvalidFileExtension(extension)
	}

	return nil
}
