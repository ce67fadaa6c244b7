package errors

import (
	"fmt"
	"net/http"
)

// File policy violations carry the offending value, so these are
// built per request instead of being shared sentinels.

func FileTooLarge(sizeBytes int64) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("file exceeds the 5MB limit (got %.2f MB)", float64(sizeBytes)/1024/1024),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func UnsupportedFileType(mimeType string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("file type not allowed, valid types are PDF, PNG and JPG (got %s)", mimeType),
		StatusCode: http.StatusUnsupportedMediaType,
	}
}

func InvalidFileExtension(extension string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("file extension not allowed: %s", extension),
		StatusCode: http.StatusBadRequest,
	}
}
