package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = grantview.Palette{
	Muted:   "#888888",
	Success: "#00ff00",
	Warning: "#ff8800",
	Info:    "#0000ff",
	Purple:  "#ff00ff",
}

func joinLine(tokens []grantview.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestTokenizer_TokenizeLines(t *testing.T) {
	t.Parallel()

	t.Run("preserves every line of JSON", func(t *testing.T) {
		t.Parallel()

		source := "{\n  \"decision\": \"REVISE\",\n  \"overall_score\": 8.4,\n  \"valid\": true\n}\n"
		lines := chroma.NewTokenizer(testPalette).TokenizeLines("json", source)

		require.Len(t, lines, 5)
		assert.Equal(t, "{", joinLine(lines[0]))
		assert.Equal(t, `  "decision": "REVISE",`, joinLine(lines[1]))
		assert.Equal(t, `  "overall_score": 8.4,`, joinLine(lines[2]))
		assert.Equal(t, "}", joinLine(lines[4]))
	})

	t.Run("styles string values", func(t *testing.T) {
		t.Parallel()

		lines := chroma.NewTokenizer(testPalette).TokenizeLines("json", `{"decision": "REVISE"}`)

		require.Len(t, lines, 1)
		var found bool
		for _, tok := range lines[0] {
			if strings.Contains(tok.Text, "REVISE") {
				found = true
				assert.Equal(t, testPalette.Success, tok.Style.Foreground)
			}
		}
		assert.True(t, found, "should find the string value token")
	})

	t.Run("styles numbers", func(t *testing.T) {
		t.Parallel()

		lines := chroma.NewTokenizer(testPalette).TokenizeLines("json", `{"score": 8.4}`)

		require.Len(t, lines, 1)
		var found bool
		for _, tok := range lines[0] {
			if strings.Contains(tok.Text, "8.4") {
				found = true
				assert.Equal(t, testPalette.Warning, tok.Style.Foreground)
			}
		}
		assert.True(t, found, "should find the number token")
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		lines := chroma.NewTokenizer(testPalette).TokenizeLines("json", "")

		assert.NotNil(t, lines)
		assert.Empty(t, lines)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		lines := chroma.NewTokenizer(testPalette).TokenizeLines("not-a-language", "x")

		assert.Nil(t, lines)
	})
}
