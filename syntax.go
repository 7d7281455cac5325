package grantview

// Style is the presentation of a highlighted token.
type Style struct {
	Foreground string
	Bold       bool
}

// Token is a run of source text with a single style.
type Token struct {
	Text  string
	Style Style
}

// Tokenizer splits source text into styled tokens, one slice per line.
// Unsupported languages yield nil.
type Tokenizer interface {
	TokenizeLines(language, source string) [][]Token
}
