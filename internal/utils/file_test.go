package utils

import (
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "letter.pdf",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateDocumentFile(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		maxSize     int64
		wantErr     bool
	}{
		{"pdf within limit", "application/pdf", 1024, 10240, false},
		{"jpeg within limit", "image/jpeg", 1024, 10240, false},
		{"png within limit", "image/png", 1024, 10240, false},
		{"disallowed type", "application/zip", 1024, 10240, true},
		{"oversized", "application/pdf", 20480, 10240, true},
		{"zero max means no cap", "application/pdf", 20480, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFile(fileHeader(tt.contentType, tt.size), tt.maxSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "permission_letter.pdf")
	second := filepath.Join(dir, "receipt.pdf")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, []byte("payload"), 0644); err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
	}

	// One path that never existed must not disturb the rest.
	RemoveFiles([]string{first, filepath.Join(dir, "missing.pdf"), second})

	for _, path := range []string{first, second} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after cleanup", path)
		}
	}
}

func TestGenerateUniqueFilename(t *testing.T) {
	first := GenerateUniqueFilename("permission letter.pdf")
	second := GenerateUniqueFilename("permission letter.pdf")

	if first == second {
		t.Error("two generated names must differ")
	}
	if filepath.Ext(first) != ".pdf" {
		t.Errorf("extension lost: %q", first)
	}
	if !strings.HasPrefix(first, "permission letter_") {
		t.Errorf("original base name lost: %q", first)
	}
}
