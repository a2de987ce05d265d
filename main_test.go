package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robmorgan/pifish/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShows(t *testing.T, docs map[string]string) string {
	dir := t.TempDir()
	for name, doc := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
	}
	return dir
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var testShows = map[string]string{
	"shark.conf": "mouth = motor(17, \"Mouth\")\nmotorAction(mouth, HIGH, 0)\nmotorAction(mouth, LOW, 3)\n",
	"eel.conf":   "volume(1, 0)\nvolume(0, 1)\npriority(1)\n",
}

func TestCheckCommand(t *testing.T) {
	dir := writeShows(t, testShows)

	out, err := execute("check", "--show-dir", dir, "--driver", "mock", "--audio", "mock")
	require.NoError(t, err)
	assert.Contains(t, out, "(0.000000-3.000000) - "+filepath.Join(dir, "shark.conf"))
	assert.Contains(t, out, "(3.000000-4.000000) - "+filepath.Join(dir, "eel.conf"))
	assert.Contains(t, out, "Total priority range: 4.000000")
}

func TestCheckCommandStrict(t *testing.T) {
	docs := map[string]string{"broken.conf": "priority(1)\npriority(2)\n"}
	for name, doc := range testShows {
		docs[name] = doc
	}
	dir := writeShows(t, docs)

	_, err := execute("check", "--show-dir", dir, "--driver", "mock", "--audio", "mock")
	require.NoError(t, err)

	_, err = execute("check", "--show-dir", dir, "--driver", "mock", "--audio", "mock", "--strict")
	assert.Error(t, err)
}

func TestCheckCommandWithoutShows(t *testing.T) {
	_, err := execute("check", "--show-dir", t.TempDir(), "--driver", "mock", "--audio", "mock")
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	dir := writeShows(t, testShows)

	out, err := execute("simulate", "--show-dir", dir, "--driver", "mock", "--audio", "mock", "--draws", "200")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "shark.conf")+" -> ")
	assert.Contains(t, out, filepath.Join(dir, "eel.conf")+" -> ")

	_, err = execute("simulate", "--show-dir", dir, "--driver", "mock", "--audio", "mock", "--draws", "0")
	assert.Error(t, err)
}

func TestInvalidDriverFlag(t *testing.T) {
	_, err := execute("check", "--show-dir", t.TempDir(), "--driver", "dmx")
	assert.Error(t, err)
}

func TestWaitForTriggersKeepsListeningForHardware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- waitForTriggers(ctx, trigger.NewLineSource(strings.NewReader(""), io.Discard), true, func() {})
	}()

	select {
	case <-done:
		t.Fatal("returned at end of input while the motion sensor was active")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("did not return after cancel")
	}
}

func TestWaitForTriggersReturnsAtEndOfInput(t *testing.T) {
	fired := 0
	err := waitForTriggers(context.Background(), trigger.NewLineSource(strings.NewReader("\n\n"), io.Discard), false, func() { fired++ })
	require.NoError(t, err)
	assert.Equal(t, 2, fired)
}
