package bubbletea

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.Presenter = (*Presenter)(nil)

// Presenter implements grantview.Presenter using a full-screen Bubble Tea program.
type Presenter struct {
	services Services
	opts     []Option
}

// NewPresenter creates a Presenter for the given services.
func NewPresenter(services Services, opts ...Option) *Presenter {
	return &Presenter{services: services, opts: opts}
}

// Present runs the UI starting at route and blocks until the user quits or
// ctx is cancelled.
func (p *Presenter) Present(ctx context.Context, route grantview.Route) error {
	opts := append(append([]Option(nil), p.opts...), WithContext(ctx))
	app, err := NewApp(route, p.services, opts...)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := prog.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
