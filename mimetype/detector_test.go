package mimetype_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func writeDOCX(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, entry := range []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"word/document.xml", `<?xml version="1.0"?><w:document/>`},
		{"_rels/.rels", `<?xml version="1.0"?><Relationships/>`},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entry.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestDetector_DetectFile(t *testing.T) {
	t.Parallel()

	d := mimetype.NewDetector()

	t.Run("pdf", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "proposal.pdf")
		require.NoError(t, os.WriteFile(path, []byte(minimalPDF), 0o644))

		got, err := d.DetectFile(path)

		require.NoError(t, err)
		assert.Equal(t, grantview.MIMETypePDF, got)
	})

	t.Run("pdf content with wrong extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "proposal.bin")
		require.NoError(t, os.WriteFile(path, []byte(minimalPDF), 0o644))

		got, err := d.DetectFile(path)

		require.NoError(t, err)
		assert.Equal(t, grantview.MIMETypePDF, got)
	})

	t.Run("docx", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "proposal.docx")
		writeDOCX(t, path)

		got, err := d.DetectFile(path)

		require.NoError(t, err)
		assert.Equal(t, grantview.MIMETypeDOCX, got)
	})

	t.Run("plain text is not allowed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("meeting notes\n"), 0o644))

		got, err := d.DetectFile(path)

		require.NoError(t, err)
		assert.False(t, grantview.IsAllowedMIMEType(got), "got %q", got)
	})

	t.Run("text named .pdf is not allowed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fake.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not really a pdf\n"), 0o644))

		got, err := d.DetectFile(path)

		require.NoError(t, err)
		assert.False(t, grantview.IsAllowedMIMEType(got), "got %q", got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := d.DetectFile(filepath.Join(t.TempDir(), "missing.pdf"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
