package show

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/robmorgan/pifish/cuelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	show    *Show
	running bool
	cues    int
	err     error
}

func (r *recordingRunner) Execute(_ context.Context, cues []cuelist.Cue) error {
	r.running = r.show.IsRunning()
	r.cues = len(cues)
	return r.err
}

func TestShowRun(t *testing.T) {
	t.Parallel()

	s, err := parse(t, newTestRig(), "volume(1, 0)\nvolume(0, 3)\n")
	require.NoError(t, err)

	runner := &recordingRunner{show: s}
	require.NoError(t, s.Run(context.Background(), runner))
	assert.True(t, runner.running)
	assert.Equal(t, 2, runner.cues)
	assert.False(t, s.IsRunning())
}

func TestShowRunReturnsRunnerError(t *testing.T) {
	t.Parallel()

	s, err := parse(t, newTestRig(), "volume(1, 0)\nvolume(0, 3)\n")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Run(context.Background(), &recordingRunner{show: s, err: boom})
	assert.True(t, errors.Is(err, boom))
	assert.False(t, s.IsRunning())
}

func TestShowInRange(t *testing.T) {
	t.Parallel()

	s := newShow("a.conf", nil, 5, 5)
	s.SetPriorityRange(10, 15)

	assert.False(t, s.InRange(9.99))
	assert.True(t, s.InRange(10))
	assert.True(t, s.InRange(14.99))
	assert.False(t, s.InRange(15))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "wave.conf")
	require.NoError(t, os.WriteFile(path, []byte("volume(1, 0)\nvolume(0, 3)\n"), 0o644))

	s, err := Load(path, newTestRig())
	require.NoError(t, err)
	assert.Equal(t, "wave", s.Name())
	assert.Equal(t, path, s.Source)

	_, err = Load(filepath.Join(dir, "missing.conf"), newTestRig())
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
