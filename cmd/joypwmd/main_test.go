//go:build linux

package main

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"joypwm-go/errcode"
	"joypwm-go/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	opts, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if opts.Board != "rpi" || opts.ADCBits != 12 || opts.ADCDevice != defaultADCDevice {
		t.Fatalf("defaults = %+v", opts)
	}
}

func TestLoadConfigHelp(t *testing.T) {
	_, err := loadConfig([]string{"--help"})
	e, ok := err.(*flags.Error)
	if !ok || e.Type != flags.ErrHelp {
		t.Fatalf("want ErrHelp, got %v", err)
	}
}

func TestBoardConfigOverrides(t *testing.T) {
	opts, err := loadConfig([]string{"--board", "bitdoglab", "--pwm-freq", "2000", "--loop-ms", "20"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	cfg, err := boardConfig(opts)
	if err != nil {
		t.Fatalf("boardConfig: %v", err)
	}
	if cfg.PWM.FreqHz != 2000 || cfg.Timing.LoopMs != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Timing.ReportMs != 1000 {
		t.Fatalf("report period changed: %d", cfg.Timing.ReportMs)
	}
}

func TestBoardConfigUnknown(t *testing.T) {
	_, err := boardConfig(&options{Board: "nope"})
	if errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("want invalid_config, got %v", err)
	}
}

func TestStatusLogger(t *testing.T) {
	lg, hook := test.NewNullLogger()
	l := &statusLogger{log: lg}
	l.Report(types.Status{VRX: 2048, VRY: 0, ButtonA: true, TSms: 1000})

	entries := hook.AllEntries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	want := []string{
		"VRX: 2048, VRY: 0, SW: 0",
		"Button A: Pressed, Button B: Released",
		"Duty Cycle LED Azul: 50.01%, Duty Cycle LED Verde: 0.00%",
	}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Fatalf("line %d = %q, want %q", i, e.Message, want[i])
		}
		if e.Level != logrus.InfoLevel {
			t.Fatalf("line %d level %v", i, e.Level)
		}
		if e.Data["vrx"] != uint16(2048) || e.Data["button_a"] != true {
			t.Fatalf("fields = %v", e.Data)
		}
	}
}
