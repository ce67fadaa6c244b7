package storage

import (
	"net/http"
	"testing"

	apperrors "task-manager-system.com/task-manager-system/internal/errors"
)

func TestValidateFile(t *testing.T) {
	cases := []struct {
		name       string
		size       int64
		filename   string
		mimeType   string
		wantStatus int // 0 means accepted
	}{
		{"valid pdf", 4 * 1024 * 1024, "report.pdf", "application/pdf", 0},
		{"valid png", 100, "diagram.png", "image/png", 0},
		{"valid jpeg with jpg extension", 100, "photo.jpg", "image/jpeg", 0},
		{"uppercase extension accepted", 100, "SCAN.PDF", "application/pdf", 0},
		{"exactly at limit", MaxFileSize, "big.pdf", "application/pdf", 0},
		{"over size limit", 6 * 1024 * 1024, "big.pdf", "application/pdf", http.StatusRequestEntityTooLarge},
		{"disallowed mime type", 100, "notes.txt", "text/plain", http.StatusUnsupportedMediaType},
		{"spoofed mime with exe extension", 100, "malware.exe", "image/png", http.StatusBadRequest},
		{"no extension", 100, "README", "application/pdf", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFile(tc.size, tc.filename, tc.mimeType)

			if tc.wantStatus == 0 {
				if err != nil {
					t.Fatalf("expected file to pass validation, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if got := apperrors.StatusCode(err); got != tc.wantStatus {
				t.Errorf("expected status %d, got %d (%v)", tc.wantStatus, got, err)
			}
		})
	}
}
