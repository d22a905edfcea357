package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxFileSize is 10MB in bytes
const MaxFileSize = 10 * 1024 * 1024

// imageContentTypes maps accepted menu photo extensions to their MIME type
var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile checks a menu photo's size and extension
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	if _, ok := imageContentTypes[strings.ToLower(filepath.Ext(fileHeader.Filename))]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only .png, .jpg and .jpeg files are allowed",
		}
	}

	return nil
}

// ContentTypeFor returns the MIME type stored with an uploaded photo
func ContentTypeFor(filename string) string {
	if contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return contentType
	}
	return "application/octet-stream"
}

// ObjectKey builds a collision-resistant storage key under prefix
func ObjectKey(prefix, filename string, unixTime int64) string {
	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%d_%s", strings.TrimSuffix(prefix, "/"), unixTime, name)
}
