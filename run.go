package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robmorgan/pifish/config"
	"github.com/robmorgan/pifish/console"
	"github.com/robmorgan/pifish/controller"
	"github.com/robmorgan/pifish/cuelist"
	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/metrics"
	"github.com/robmorgan/pifish/trigger"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

func newRunCmd(opts *options) *cobra.Command {
	var useConsole bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Wait for motion and play shows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runEngine(ctx, cfg, useConsole)
		},
	}
	cmd.Flags().BoolVar(&useConsole, "console", false, "show the interactive console instead of reading triggers from stdin")
	return cmd
}

func runEngine(ctx context.Context, cfg *config.Config, useConsole bool) (err error) {
	logger := logger.GetProjectLogger()
	logger.Info("Initializing...")

	rig, shows, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rig.Fixtures.Close(); err == nil {
			err = closeErr
		}
	}()

	output, err := newOutput(cfg)
	if err != nil {
		return err
	}

	executor := cuelist.NewExecutor(clock.RealClock{}, rig.Fixtures, output)
	executor.SetPollInterval(cfg.PollDuration())

	m := metrics.NewManager()
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, m)
	}

	cooldown := controller.NewCooldown(cfg.MinSleep, cfg.MaxSleep, cfg.SleepIncrease, cfg.SleepDecrease)
	ctrl := controller.New(shows, executor, clock.RealClock{}, cooldown, cfg.RelaxInterval(), controller.WithMetrics(m))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go ctrl.Run(ctx)

	fire := func() { ctrl.Trigger(ctx) }
	hardware := cfg.Driver == config.DriverGPIO
	if hardware {
		go func() {
			if err := trigger.NewGPIOSource(cfg.MotionPin).Listen(ctx, fire); err != nil {
				logger.WithError(err).Error("Motion sensor stopped")
			}
		}()
	}

	logger.Info("Done loading shows. Beginning main control loop")
	if useConsole {
		err = console.Run(ctx, ctrl, cfg.MaxSleep)
	} else {
		err = waitForTriggers(ctx, trigger.NewLineSource(os.Stdin, os.Stdout), hardware, fire)
	}

	cancel()
	ctrl.Wait()
	logger.Info("Shutting down")
	return err
}

// waitForTriggers listens on the manual source. If it runs out while the motion sensor is still listening, it keeps
// waiting until ctx is done.
func waitForTriggers(ctx context.Context, manual trigger.Source, hardware bool, fire func()) error {
	if err := manual.Listen(ctx, fire); err != nil {
		return err
	}
	if hardware && ctx.Err() == nil {
		logger.GetProjectLogger().Info("Standard input closed, waiting for motion")
		<-ctx.Done()
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Manager) {
	logger := logger.GetProjectLogger()

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Infof("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("Metrics server stopped")
	}
}
