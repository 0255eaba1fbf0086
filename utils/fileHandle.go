package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taxprep/config"

	"github.com/google/uuid"
)

// Tax form kinds accepted for upload
const (
	W9FormKind = "w9"
	W2FormKind = "w2"
)

// MaxUploadSize is the per-file cap for tax form uploads (5 MiB)
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// FormDir returns the flat per-kind directory holding uploaded originals
func FormDir(kind string) string {
	return filepath.Join(config.AppConfig.UploadDir, kind+"-forms")
}

// FormPath returns the on-disk location of a stored upload
func FormPath(kind, fileName string) string {
	return filepath.Join(FormDir(kind), fileName)
}

// EnsureUploadDirs creates the per-kind upload directories. Called once at
// process start, not per request.
func EnsureUploadDirs() error {
	for _, kind := range []string{W9FormKind, W2FormKind} {
		if err := os.MkdirAll(FormDir(kind), 0755); err != nil {
			return fmt.Errorf("failed to create upload dir for %s forms: %w", kind, err)
		}
	}
	return nil
}

// ValidateTaxForm checks size, extension and the declared content type
// against the allow-list. Both the extension and the content type must match.
func ValidateTaxForm(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return ErrNoFile
	}
	if file.Size > MaxUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFileType
	}

	contentType := file.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	if !allowedContentTypes[strings.TrimSpace(strings.ToLower(contentType))] {
		return ErrUnsupportedFileType
	}

	return nil
}

// SaveTaxForm stores the upload under the per-kind directory and returns the
// generated file name. Names carry a timestamp plus a random suffix so
// concurrent uploads never collide; a prior file of the same kind is left in
// place, only the pointer on the user row moves.
func SaveTaxForm(file *multipart.FileHeader, kind string, userID uint) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFilename := fmt.Sprintf("%s-%d-%d-%s%s", kind, userID, time.Now().Unix(), uuid.NewString()[:8], ext)
	filePath := filepath.Join(FormDir(kind), newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}
