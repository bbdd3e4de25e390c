package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/menu/internal/app"
	"github.com/idilsaglam/menu/internal/suggest"
)

// Options tune the interactive program.
type Options struct {
	Theme string
	// AltScreen is off in tests and when output is not a terminal.
	AltScreen bool
}

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, a *app.App, src suggest.Source, opt Options) error {
	setTheme(opt.Theme)
	applyColorProfile(opt.Theme)

	sel := suggest.NewSelector(src)
	unsubscribe := a.Cache().Subscribe(sel.Observe)
	defer unsubscribe()

	var popts []tea.ProgramOption
	popts = append(popts, tea.WithContext(ctx))
	if opt.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	p := tea.NewProgram(New(ctx, a, sel), popts...)
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
