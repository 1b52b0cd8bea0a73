package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"director@setsweet.test", true},
		{"first.last+tag@example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
	}

	for _, test := range tests {
		err := ValidateEmail(test.email)
		if test.valid && err != nil {
			t.Errorf("ValidateEmail(%q) = %v, expected valid", test.email, err)
		}
		if !test.valid && err == nil {
			t.Errorf("ValidateEmail(%q) accepted, expected error", test.email)
		}
	}
}

func TestValidateFileName(t *testing.T) {
	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}

	tests := []struct {
		name     string
		filename string
		valid    bool
	}{
		{"plain name", "script.pdf", true},
		{"spaces ok", "final draft v2.pdf", true},
		{"empty", "", false},
		{"too long", string(longName), false},
		{"path separator", "a/b.pdf", false},
		{"backslash", "a\\b.pdf", false},
		{"null byte", "a\x00b.pdf", false},
		{"angle bracket", "a<b.pdf", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateFileName(test.filename)
			if test.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !test.valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestValidateScriptUpload(t *testing.T) {
	const maxSize = 10 << 20

	tests := []struct {
		name   string
		header *multipart.FileHeader
		valid  bool
	}{
		{"valid pdf", fileHeader("script.pdf", "application/pdf", 1024), true},
		{"uppercase extension", fileHeader("SCRIPT.PDF", "application/pdf", 1024), true},
		{"no declared type", fileHeader("script.pdf", "", 1024), true},
		{"wrong extension", fileHeader("script.txt", "application/pdf", 1024), false},
		{"wrong content type", fileHeader("script.pdf", "text/plain", 1024), false},
		{"too large", fileHeader("script.pdf", "application/pdf", maxSize+1), false},
		{"empty filename", fileHeader("", "application/pdf", 1024), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateScriptUpload(test.header, maxSize)
			if test.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !test.valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateImageUpload(t *testing.T) {
	const maxSize = 5 << 20

	tests := []struct {
		name   string
		header *multipart.FileHeader
		valid  bool
	}{
		{"png", fileHeader("frame.png", "image/png", 1024), true},
		{"jpeg", fileHeader("frame.jpeg", "image/jpeg", 1024), true},
		{"webp no declared type", fileHeader("frame.webp", "", 1024), true},
		{"pdf rejected", fileHeader("frame.pdf", "application/pdf", 1024), false},
		{"image extension but text type", fileHeader("frame.png", "text/html", 1024), false},
		{"too large", fileHeader("frame.png", "image/png", maxSize+1), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateImageUpload(test.header, maxSize)
			if test.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !test.valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}
