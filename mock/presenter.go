package mock

import (
	"context"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.Presenter = (*Presenter)(nil)

// Presenter is a mock implementation of grantview.Presenter.
type Presenter struct {
	PresentFn func(ctx context.Context, route grantview.Route) error
}

func (p *Presenter) Present(ctx context.Context, route grantview.Route) error {
	return p.PresentFn(ctx, route)
}
