// Package mimetype detects document types from file content.
package mimetype

import (
	mimetypelib "github.com/gabriel-vasile/mimetype"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.MIMEDetector = (*Detector)(nil)

// Detector implements grantview.MIMEDetector by sniffing file content, so a
// renamed file is classified by what it contains rather than its extension.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFile returns the MIME type of the file at path, without parameters.
func (d *Detector) DetectFile(path string) (string, error) {
	m, err := mimetypelib.DetectFile(path)
	if err != nil {
		return "", err
	}
	for _, allowed := range grantview.AllowedMIMETypes {
		if m.Is(allowed) {
			return allowed, nil
		}
	}
	return m.String(), nil
}
