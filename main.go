package main

import (
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pifish/config"
	"github.com/robmorgan/pifish/logger"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command. Flags that are set override the config file and environment.
type options struct {
	configPath string
	showDir    string
	driver     string
	audio      string
	logLevel   string
	strict     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintErrorWithStackTrace(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	run := newRunCmd(opts)

	cmd := &cobra.Command{
		Use:           "pifish",
		Short:         "Plays animatronic shows when motion is detected",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run.RunE,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&opts.showDir, "show-dir", "", "directory of show documents")
	flags.StringVar(&opts.driver, "driver", "", "motor driver: gpio or mock")
	flags.StringVar(&opts.audio, "audio", "", "audio output: speaker or mock")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level")
	flags.BoolVar(&opts.strict, "strict", false, "fail when any show cannot be loaded")

	cmd.AddCommand(run, newCheckCmd(opts), newSimulateCmd(opts))
	return cmd
}

// loadConfig layers the command line flags over the config file and environment, then configures logging.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	flags := cmd.Flags()
	if flags.Changed("show-dir") {
		cfg.ShowDir = opts.showDir
	}
	if flags.Changed("driver") {
		cfg.Driver = opts.driver
	}
	if flags.Changed("audio") {
		cfg.Audio = opts.audio
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return cfg, nil
}
