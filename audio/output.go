package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pifish/utils"
)

// DefaultSampleRate is the rate the speaker is opened at. Clips at other rates are resampled.
const DefaultSampleRate = beep.SampleRate(44100)

// Output plays clips.
type Output interface {
	// Play starts playing clip, replacing whatever is playing. It does not wait for the clip to finish.
	Play(clip *Clip) error

	// SetMasterVolume sets the playback level, from 0.0 (silent) to 1.0 (full).
	SetMasterVolume(level float64) error
}

// Speaker plays clips on the default sound device.
type Speaker struct {
	sampleRate beep.SampleRate
	level      float64
	current    *effects.Volume
}

// NewSpeaker opens the default sound device with a 100ms buffer.
func NewSpeaker(sampleRate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return &Speaker{sampleRate: sampleRate, level: 1.0}, nil
}

func (s *Speaker) Play(clip *Clip) error {
	if clip.buffer == nil {
		return nil
	}

	var streamer beep.Streamer = clip.buffer.Streamer(0, clip.buffer.Len())
	if rate := clip.buffer.Format().SampleRate; rate != s.sampleRate {
		streamer = beep.Resample(4, rate, s.sampleRate, streamer)
	}

	speaker.Lock()
	volume := &effects.Volume{Streamer: streamer, Base: 2}
	applyLevel(volume, s.level)
	s.current = volume
	speaker.Unlock()

	speaker.Clear()
	speaker.Play(volume)
	return nil
}

func (s *Speaker) SetMasterVolume(level float64) error {
	speaker.Lock()
	defer speaker.Unlock()

	s.level = utils.Clamp(level, 0, 1)
	if s.current != nil {
		applyLevel(s.current, s.level)
	}
	return nil
}

// applyLevel maps a linear level onto beep's logarithmic volume.
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}

// MockOutput records what would have been played. It is used for dry runs and tests.
type MockOutput struct {
	// PlayHook, when set, is called on every Play before it returns.
	PlayHook func(clip *Clip)

	played  []string
	volumes []float64
	lock    sync.Mutex
}

// NewMockOutput creates an empty MockOutput.
func NewMockOutput() *MockOutput {
	return &MockOutput{}
}

func (o *MockOutput) Play(clip *Clip) error {
	if o.PlayHook != nil {
		o.PlayHook(clip)
	}
	o.lock.Lock()
	defer o.lock.Unlock()
	o.played = append(o.played, clip.Path)
	return nil
}

func (o *MockOutput) SetMasterVolume(level float64) error {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.volumes = append(o.volumes, level)
	return nil
}

// Played returns the paths of every clip played, in order.
func (o *MockOutput) Played() []string {
	o.lock.Lock()
	defer o.lock.Unlock()
	return append([]string(nil), o.played...)
}

// Volumes returns every volume level set, in order.
func (o *MockOutput) Volumes() []float64 {
	o.lock.Lock()
	defer o.lock.Unlock()
	return append([]float64(nil), o.volumes...)
}
