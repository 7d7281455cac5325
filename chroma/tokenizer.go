// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to styles.
type StyleFunc func(chromalib.TokenType) grantview.Style

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a tokenizer styled from the palette.
func NewTokenizer(p grantview.Palette) *Tokenizer {
	return &Tokenizer{styleFunc: StyleFromPalette(p)}
}

// TokenizeLines tokenizes source with full context, then splits tokens by line
// so multi-line strings keep their style on every line.
// Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source.
func (t *Tokenizer) TokenizeLines(language, source string) [][]grantview.Token {
	if source == "" {
		return [][]grantview.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	lines := [][]grantview.Token{nil}
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		style := t.styleFunc(token.Type)
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], grantview.Token{Text: part, Style: style})
			}
		}
	}

	// A trailing newline does not start another line.
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
