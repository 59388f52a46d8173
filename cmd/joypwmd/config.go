//go:build linux

package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"joypwm-go/services/config"
	"joypwm-go/types"
)

const (
	defaultBoard     = "rpi"
	defaultADCDevice = "/sys/bus/iio/devices/iio:device0"
	defaultADCBits   = 12
)

type options struct {
	Board       string `long:"board" description:"Board wiring to use" default:"rpi"`
	Debug       bool   `long:"debug" description:"Start in debug mode"`
	ShowVersion bool   `long:"version" description:"Display version information and exit"`
	ADCDevice   string `long:"adc-device" description:"IIO device directory providing in_voltageN_raw" default:"/sys/bus/iio/devices/iio:device0"`
	ADCBits     uint8  `long:"adc-bits" description:"Resolution of the IIO converter" default:"12"`
	PWMFreq     uint64 `long:"pwm-freq" description:"Override the PWM frequency in Hz"`
	LoopMs      uint32 `long:"loop-ms" description:"Override the control loop period in ms"`
}

// loadConfig parses the command line into options.
// A help request surfaces as *flags.Error with Type flags.ErrHelp.
func loadConfig(args []string) (*options, error) {
	opts := options{
		Board:     defaultBoard,
		ADCDevice: defaultADCDevice,
		ADCBits:   defaultADCBits,
	}
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}

// boardConfig resolves the named board and applies command line overrides.
func boardConfig(opts *options) (types.BoardConfig, error) {
	cfg, err := config.Lookup(opts.Board)
	if err != nil {
		return types.BoardConfig{}, err
	}
	if opts.PWMFreq != 0 {
		cfg.PWM.FreqHz = opts.PWMFreq
	}
	if opts.LoopMs != 0 {
		cfg.Timing.LoopMs = opts.LoopMs
	}
	if err := config.Validate(cfg); err != nil {
		return types.BoardConfig{}, errors.Wrap(err, "overrides")
	}
	return cfg, nil
}
