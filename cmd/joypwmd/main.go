//go:build linux

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"joypwm-go/services/control"
	"joypwm-go/services/hal"
	"joypwm-go/services/hal/periph"
	"joypwm-go/x/timex"
)

var (
	// Version is set using -ldflags during compilation.
	Version string
	// Commit is set using -ldflags during compilation.
	Commit string
)

// joypwmdMain is the true entry point for joypwmd. Defers in main are not
// executed when os.Exit is called.
func joypwmdMain() error {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	opts, err := loadConfig(os.Args[1:])
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	log.Infof("Version %s (commit %s)", Version, Commit)
	if opts.ShowVersion {
		return nil
	}

	cfg, err := boardConfig(opts)
	if err != nil {
		return errors.Errorf("Invalid board %q: %v", opts.Board, err)
	}
	log.WithFields(log.Fields{
		"board":    cfg.Name,
		"wrap":     cfg.PWM.Wrap,
		"pwm_hz":   cfg.PWM.FreqHz,
		"loop_ms":  cfg.Timing.LoopMs,
		"adc":      opts.ADCDevice,
		"adc_bits": opts.ADCBits,
	}).Debug("Loaded config.")

	reg, err := periph.New(periph.Options{ADCDevice: opts.ADCDevice, ADCBits: opts.ADCBits})
	if err != nil {
		return errors.Errorf("Could not initialise GPIO host: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := timex.Boot{}
	board, err := hal.Open(ctx, cfg, reg, clk)
	if err != nil {
		return errors.Errorf("Could not open board: %v", err)
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Errorf("Could not close board: %v", err)
		} else {
			log.Info("Closed board.")
		}
	}()

	for _, in := range board.Info() {
		log.WithField("detail", in.Detail).Debugf("Device %s ready.", in.Driver)
	}

	loop := control.ForBoard(board, &statusLogger{log: log.StandardLogger()}, clk)
	log.Info("Running control loop.")
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Errorf("Control loop stopped: %v", err)
	}
	log.Info("Received shutdown signal.")
	return nil
}

func main() {
	if err := joypwmdMain(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
