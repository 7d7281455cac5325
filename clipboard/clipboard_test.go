package clipboard_test

import (
	"testing"

	"github.com/atotto/clipboard"

	grantclipboard "github.com/fwojciec/grantview/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	t.Parallel()

	cb := grantclipboard.NewSystem()
	if !cb.Available() {
		assert.ErrorIs(t, cb.Copy("anything"), grantclipboard.ErrUnsupported)
		t.Skip("no clipboard utility available, skipping round trip")
	}

	testContent := "http://localhost:8000/api/evaluations/ev_123/download"
	if err := cb.Copy(testContent); err != nil {
		// A utility can be installed without a display to talk to.
		t.Skipf("clipboard not usable here: %v", err)
	}

	out, err := clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, out)
}
