package console

import (
	"fmt"

	"github.com/robmorgan/pifish/controller"
	"github.com/robmorgan/pifish/utils"
)

func (m model) View() string {
	snap := m.snapshot

	var s string
	s += titleStyle.Render("pifish") + "\n\n"
	if snap.State == controller.Running {
		s += fmt.Sprintf("%s %s", m.spinner.View(), snap.State)
		if snap.Current != "" {
			s += fmt.Sprintf(" [%s]", snap.Current)
		} else {
			s += " (cooling down)"
		}
		s += "\n\n"
	} else {
		s += fmt.Sprintf("%s\n\n", snap.State)
	}

	s += fmt.Sprintf("Cooldown: %.1fs\n", snap.SleepTime)
	s += m.cooldown.ViewAs(utils.ToUnitClamp(snap.SleepTime, 0, m.maxSleep)) + "\n\n"
	s += fmt.Sprintf("Accepted: %d  Dropped: %d\n", snap.Accepted, snap.Dropped)
	s += m.status + "\n"

	s += helpStyle.Render("(G)o, space or enter to trigger\n\nPress q or ctrl+c to exit\n")

	if m.quitting {
		s += "\n"
	}
	return appStyle.Render(s)
}
