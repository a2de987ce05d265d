package show

import (
	"github.com/robmorgan/pifish/audio"
	"github.com/robmorgan/pifish/fixture"
)

// Rig is the hardware shared by every show in the process: the motors, deduplicated by pin, and the decoded
// sound clips, deduplicated by path. It is built once at startup and passed to everything that loads or runs shows.
type Rig struct {
	Fixtures *fixture.Manager
	Sounds   *audio.Library
}

// NewRig creates a Rig on top of a motor driver and a clip decoder.
func NewRig(driver fixture.Driver, decode audio.Decoder) *Rig {
	return &Rig{
		Fixtures: fixture.NewManager(driver),
		Sounds:   audio.NewLibrary(decode),
	}
}
