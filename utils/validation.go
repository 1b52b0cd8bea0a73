package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

func ValidateFileName(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if len(filename) > 255 {
		return fmt.Errorf("filename too long (max 255 characters)")
	}

	if !utf8.ValidString(filename) {
		return fmt.Errorf("filename contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00", "/", "\\"}
	for _, char := range invalidChars {
		if strings.Contains(filename, char) {
			return fmt.Errorf("filename contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateScriptUpload checks a multipart script upload: PDF only, both by
// declared MIME type and extension, within the size limit.
func ValidateScriptUpload(header *multipart.FileHeader, maxSize int64) error {
	if err := ValidateFileName(header.Filename); err != nil {
		return err
	}

	if header.Size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", header.Size, maxSize)
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		return fmt.Errorf("only PDF files are allowed, got extension %q", ext)
	}

	if contentType := header.Header.Get("Content-Type"); contentType != "" && contentType != "application/pdf" {
		return fmt.Errorf("only PDF files are allowed, got content type %q", contentType)
	}

	return nil
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageUpload checks a multipart storyboard image upload: image
// extension and image/* MIME type, within the size limit.
func ValidateImageUpload(header *multipart.FileHeader, maxSize int64) error {
	if err := ValidateFileName(header.Filename); err != nil {
		return err
	}

	if header.Size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", header.Size, maxSize)
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); !imageExtensions[ext] {
		return fmt.Errorf("unsupported image extension %q", ext)
	}

	if contentType := header.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("only image files are allowed, got content type %q", contentType)
	}

	return nil
}
