package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/masmgr/histview/internal/session"
)

// Run shows the browser on the terminal until the user quits or ctx is done.
func Run(ctx context.Context, s *session.Session, opts Options) error {
	model := NewModel(Deps{
		History:  s.History,
		Cursor:   s.Cursor,
		Resolver: s.Resolver,
		Meta:     s.Repo,
	}, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
