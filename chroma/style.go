package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"

	"github.com/fwojciec/grantview"
)

// StyleFromPalette returns a function that maps chroma token types to styles
// for structured data such as JSON records.
func StyleFromPalette(p grantview.Palette) StyleFunc {
	return func(tt chromalib.TokenType) grantview.Style {
		switch {
		// Object keys
		case tt == chromalib.NameTag:
			return grantview.Style{Foreground: p.Info}

		// true, false, null
		case tt.InCategory(chromalib.Keyword):
			return grantview.Style{Foreground: p.Purple, Bold: true}

		case tt.InSubCategory(chromalib.LiteralString):
			return grantview.Style{Foreground: p.Success}

		case tt.InSubCategory(chromalib.LiteralNumber):
			return grantview.Style{Foreground: p.Warning}

		case tt == chromalib.Punctuation:
			return grantview.Style{Foreground: p.Muted}

		default:
			return grantview.Style{}
		}
	}
}
