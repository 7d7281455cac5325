package grantview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Accepted document MIME types.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedMIMETypes lists the document types the backend accepts.
var AllowedMIMETypes = []string{MIMETypePDF, MIMETypeDOCX}

// AllowedExtensions lists file extensions offered by file browsers.
var AllowedExtensions = []string{".pdf", ".docx"}

// IsAllowedMIMEType reports whether documents of the given type may be submitted.
// Parameters such as "; charset=binary" are ignored.
func IsAllowedMIMEType(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	for _, allowed := range AllowedMIMETypes {
		if base == allowed {
			return true
		}
	}
	return false
}

// MIMEDetector detects the content type of a local file.
type MIMEDetector interface {
	DetectFile(path string) (string, error)
}

// Document is a local file staged for submission.
type Document struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string
}

// NewDocument stages the file at path. Files whose detected type is not
// allowed are rejected with ErrUnsupportedFileType.
func NewDocument(path string, detector MIMEDetector) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory", path)
	}
	mimeType, err := detector.DetectFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !IsAllowedMIMEType(mimeType) {
		return Document{}, fmt.Errorf("%s (%s): %w", filepath.Base(path), mimeType, ErrUnsupportedFileType)
	}
	return Document{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mimeType,
	}, nil
}

// Allowed reports whether the document may be submitted.
func (d Document) Allowed() bool {
	return IsAllowedMIMEType(d.MIMEType)
}
