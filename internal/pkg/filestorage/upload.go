// Package filestorage reads uploaded document files into memory before they
// are persisted alongside their application slot.
package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/scholarship/internal/pkg/logger"
)

var (
	// ErrEmptyFile is returned for zero-byte uploads
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("uploaded file is too large")
)

// Upload is an uploaded file held in memory
type Upload struct {
	Name     string
	Content  []byte
	MimeType string
}

// Size returns the content length in bytes
func (u *Upload) Size() int64 {
	return int64(len(u.Content))
}

// ReadUpload opens a multipart file header and reads it fully, rejecting
// files larger than maxBytes.
func ReadUpload(fileHeader *multipart.FileHeader, maxBytes int64) (*Upload, error) {
	if fileHeader == nil {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, fileHeader.Size, maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ReadFrom(file, fileHeader.Filename, maxBytes)
}

// ReadFrom reads at most maxBytes from r into an Upload named name
func ReadFrom(r io.Reader, name string, maxBytes int64) (*Upload, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(content)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxBytes)
	}

	return &Upload{
		Name:     SanitizeFilename(name),
		Content:  content,
		MimeType: DetectContentType(content),
	}, nil
}

// DetectContentType sniffs the MIME type from the file content
func DetectContentType(content []byte) string {
	return mimetype.Detect(content).String()
}

// SanitizeFilename strips directories and control characters from a client
// supplied name. An unusable name becomes "documento".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '"' {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "documento"
	}
	return name
}
