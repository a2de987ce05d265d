package config

import (
	"errors"
	"fmt"
	"time"
)

// Config represents options that configure the global behavior of the program
type Config struct {
	// ShowDir is the directory scanned for show documents.
	ShowDir string `koanf:"show_dir"`

	// ShowExt is the file extension of a show document.
	ShowExt string `koanf:"show_ext"`

	// Strict aborts startup on the first show that fails to load instead of skipping it.
	Strict bool `koanf:"strict"`

	// MotionPin is the BCM pin the motion sensor is wired to.
	MotionPin int `koanf:"motion_pin"`

	// Driver selects the actuator driver: "gpio" or "mock".
	Driver string `koanf:"driver"`

	// Audio selects the audio output: "speaker" or "mock".
	Audio string `koanf:"audio"`

	// Cooldown tuning, in seconds.
	MinSleep        float64 `koanf:"min_sleep"`
	MaxSleep        float64 `koanf:"max_sleep"`
	SleepIncrease   float64 `koanf:"sleep_increase"`
	SleepDecrease   float64 `koanf:"sleep_decrease"`
	SleepThreadTime float64 `koanf:"sleep_thread_time"`

	// HistorySize is the number of recently played shows excluded from selection.
	HistorySize int `koanf:"history_size"`

	// MaxPickAttempts caps the number of redraws before a recently played show is allowed again.
	MaxPickAttempts int `koanf:"max_pick_attempts"`

	// PollInterval is the executor's pause between clock checks in seconds. 0 busy-polls.
	PollInterval float64 `koanf:"poll_interval"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// MetricsAddr serves prometheus metrics on /metrics when set, e.g. ":9100".
	MetricsAddr string `koanf:"metrics_addr"`
}

const (
	DriverGPIO   = "gpio"
	DriverMock   = "mock"
	AudioSpeaker = "speaker"
	AudioMock    = "mock"
)

// New creates a Config object with reasonable defaults for real usage
func New() *Config {
	return &Config{
		ShowDir:         "shows",
		ShowExt:         ".conf",
		MotionPin:       26,
		Driver:          DriverGPIO,
		Audio:           AudioSpeaker,
		MinSleep:        5.0,
		MaxSleep:        45.0,
		SleepIncrease:   5.0,
		SleepDecrease:   0.1,
		SleepThreadTime: 0.5,
		HistorySize:     10,
		MaxPickAttempts: 100,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ShowDir == "" {
		errs = append(errs, errors.New("show_dir must not be empty"))
	}
	if c.MinSleep < 0 || c.MinSleep > c.MaxSleep {
		errs = append(errs, fmt.Errorf("min_sleep (%v) must be between 0 and max_sleep (%v)", c.MinSleep, c.MaxSleep))
	}
	if c.SleepIncrease <= 0 || c.SleepDecrease <= 0 {
		errs = append(errs, errors.New("sleep_increase and sleep_decrease must be positive"))
	}
	if c.SleepThreadTime <= 0 {
		errs = append(errs, errors.New("sleep_thread_time must be positive"))
	}
	if c.HistorySize < 0 {
		errs = append(errs, errors.New("history_size must not be negative"))
	}
	if c.MaxPickAttempts < 1 {
		errs = append(errs, errors.New("max_pick_attempts must be at least 1"))
	}
	if c.PollInterval < 0 {
		errs = append(errs, errors.New("poll_interval must not be negative"))
	}
	if c.Driver != DriverGPIO && c.Driver != DriverMock {
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	if c.Audio != AudioSpeaker && c.Audio != AudioMock {
		errs = append(errs, fmt.Errorf("unknown audio output %q", c.Audio))
	}
	return errors.Join(errs...)
}

// RelaxInterval is how often the background loop shortens the cooldown.
func (c *Config) RelaxInterval() time.Duration {
	return seconds(c.SleepThreadTime)
}

// PollDuration is the executor poll interval.
func (c *Config) PollDuration() time.Duration {
	return seconds(c.PollInterval)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
