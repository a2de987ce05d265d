package main

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pifish/audio"
	"github.com/robmorgan/pifish/catalog"
	"github.com/robmorgan/pifish/config"
	"github.com/robmorgan/pifish/fixture"
	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/show"
)

func newDriver(cfg *config.Config) (fixture.Driver, error) {
	if cfg.Driver == config.DriverMock {
		return fixture.NewMockDriver(), nil
	}
	return fixture.OpenGPIO()
}

func newOutput(cfg *config.Config) (audio.Output, error) {
	if cfg.Audio == config.AudioMock {
		return audio.NewMockOutput(), nil
	}
	return audio.NewSpeaker(audio.DefaultSampleRate)
}

func newDecoder(cfg *config.Config) audio.Decoder {
	if cfg.Audio == config.AudioMock {
		return audio.SkipDecode
	}
	return audio.DecodeFile
}

// loadCatalog opens the motor driver and loads every show. The caller owns the returned rig and must close its
// fixtures.
func loadCatalog(cfg *config.Config) (*show.Rig, *catalog.Catalog, error) {
	logger := logger.GetProjectLogger()

	driver, err := newDriver(cfg)
	if err != nil {
		return nil, nil, err
	}
	rig := show.NewRig(driver, newDecoder(cfg))

	logger.Infof("Loading shows from [%s]...", cfg.ShowDir)
	shows, err := catalog.Load(cfg.ShowDir, cfg.ShowExt, rig, cfg.Strict)
	if err != nil {
		rig.Fixtures.Close()
		return nil, nil, err
	}

	c, err := catalog.New(shows,
		catalog.WithHistorySize(cfg.HistorySize),
		catalog.WithMaxAttempts(cfg.MaxPickAttempts),
	)
	if err != nil {
		rig.Fixtures.Close()
		return nil, nil, errors.WithStackTrace(err)
	}
	logger.Infof("Loaded %d shows with %d motors and %d sounds", len(shows), len(rig.Fixtures.Motors()), rig.Sounds.Len())
	return rig, c, nil
}
