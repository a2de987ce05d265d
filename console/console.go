package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the console until the user quits or ctx is done. maxSleep scales the cooldown bar.
func Run(ctx context.Context, ctrl Controller, maxSleep float64) error {
	p := tea.NewProgram(newModel(ctx, ctrl, maxSleep))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	return p.Start()
}
