package mock

import "github.com/fwojciec/grantview"

// Compile-time interface verification.
var _ grantview.MIMEDetector = (*MIMEDetector)(nil)

// MIMEDetector is a mock implementation of grantview.MIMEDetector.
type MIMEDetector struct {
	DetectFileFn func(path string) (string, error)
}

func (d *MIMEDetector) DetectFile(path string) (string, error) {
	return d.DetectFileFn(path)
}
