// Package console is an interactive terminal for triggering shows by hand and watching the cooldown.
package console

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/pifish/controller"
)

// Controller is the part of the trigger controller the console drives.
type Controller interface {
	Trigger(ctx context.Context) bool
	Snapshot() controller.Snapshot
}

type model struct {
	ctx      context.Context
	ctrl     Controller
	maxSleep float64

	spinner  spinner.Model
	cooldown progress.Model
	snapshot controller.Snapshot
	status   string
	quitting bool
}

func newModel(ctx context.Context, ctrl Controller, maxSleep float64) model {
	s := spinner.New()
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return model{
		ctx:      ctx,
		ctrl:     ctrl,
		maxSleep: maxSleep,
		spinner:  s,
		cooldown: p,
		snapshot: ctrl.Snapshot(),
		status:   "Waiting for a trigger",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)
