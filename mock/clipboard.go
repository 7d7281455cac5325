package mock

import "github.com/fwojciec/grantview"

// Compile-time interface verification.
var _ grantview.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of grantview.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
