package grantview_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowedMIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mimeType string
		want     bool
	}{
		{grantview.MIMETypePDF, true},
		{grantview.MIMETypeDOCX, true},
		{"application/pdf; charset=binary", true},
		{"Application/PDF", true},
		{"text/plain; charset=utf-8", false},
		{"application/msword", false},
		{"application/zip", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, grantview.IsAllowedMIMEType(tt.mimeType), "mime type %q", tt.mimeType)
	}
}

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("stages an allowed file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "proposal.pdf", 2048)
		detector := &mock.MIMEDetector{
			DetectFileFn: func(string) (string, error) { return grantview.MIMETypePDF, nil },
		}

		doc, err := grantview.NewDocument(path, detector)

		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, "proposal.pdf", doc.Name)
		assert.Equal(t, int64(2048), doc.Size)
		assert.Equal(t, grantview.MIMETypePDF, doc.MIMEType)
		assert.True(t, doc.Allowed())
	})

	t.Run("rejects a disallowed type", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "notes.txt", 10)
		detector := &mock.MIMEDetector{
			DetectFileFn: func(string) (string, error) { return "text/plain; charset=utf-8", nil },
		}

		_, err := grantview.NewDocument(path, detector)

		assert.ErrorIs(t, err, grantview.ErrUnsupportedFileType)
	})

	t.Run("uses detected type, not the extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "renamed.pdf", 10)
		detector := &mock.MIMEDetector{
			DetectFileFn: func(string) (string, error) { return "image/png", nil },
		}

		_, err := grantview.NewDocument(path, detector)

		assert.ErrorIs(t, err, grantview.ErrUnsupportedFileType)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MIMEDetector{
			DetectFileFn: func(string) (string, error) { t.Fatal("detector should not be called"); return "", nil },
		}

		_, err := grantview.NewDocument(filepath.Join(t.TempDir(), "nope.pdf"), detector)

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := grantview.NewDocument(t.TempDir(), &mock.MIMEDetector{})

		assert.Error(t, err)
	})

	t.Run("detector failure", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "proposal.pdf", 10)
		detectErr := errors.New("read failed")
		detector := &mock.MIMEDetector{
			DetectFileFn: func(string) (string, error) { return "", detectErr },
		}

		_, err := grantview.NewDocument(path, detector)

		assert.ErrorIs(t, err, detectErr)
	})
}
