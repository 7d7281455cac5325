package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/grantview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		startCol int
		expected string
	}{
		{"empty string", "", 0, ""},
		{"no tabs", "hello world", 0, "hello world"},
		{"tab at start", "\t", 0, "        "},
		{"tab after one char", "a\t", 0, "a       "},
		{"tab after seven chars", "1234567\t", 0, "1234567 "},
		{"start column shifts the stop", "\tx", 4, "    x"},
		{"newline resets the column", "ab\n\tc", 0, "ab\n        c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, bubbletea.ExpandTabs(tt.input, tt.startCol))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("wraps at word boundaries and indents", func(t *testing.T) {
		t.Parallel()

		got := bubbletea.Wrap("the quick brown fox jumps over the lazy dog", 20, 2)

		for _, line := range strings.Split(got, "\n") {
			assert.True(t, strings.HasPrefix(line, "  "), "line %q is not indented", line)
			assert.LessOrEqual(t, len(line), 20)
		}
		assert.Contains(t, got, "quick")
		assert.Contains(t, got, "lazy dog")
	})

	t.Run("zero width leaves lines intact", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "one line of text", bubbletea.Wrap("one line of text", 0, 0))
	})
}
