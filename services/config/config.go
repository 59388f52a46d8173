// Package config holds the board wiring tables and their validation.
// The firmware's board is fixed at build time (see select_*.go).
package config

import (
	"joypwm-go/errcode"
	"joypwm-go/types"
	"joypwm-go/x/strconvx"
)

// SysClockHz is the RP2040 system clock the PWM counter runs from.
const SysClockHz = 125_000_000

// FreqForWrap is the counter frequency with an integer divider of 1:
// the counter runs 0..wrap, so one period is wrap+1 ticks.
func FreqForWrap(wrap uint16) uint64 {
	return SysClockHz / (uint64(wrap) + 1)
}

// Default returns the reference wiring: BitDogLab-style joystick, buttons
// and RGB LED on a Pico, with the SSD1306 on I2C1.
func Default() types.BoardConfig {
	return types.BoardConfig{
		Name: "bitdoglab",
		Pins: types.Pins{
			VRX:      26,
			VRY:      27,
			SW:       22,
			ButtonA:  5,
			ButtonB:  6,
			LEDBlue:  12,
			LEDGreen: 11,
			LEDRed:   13,
		},
		ADC: types.ADCConfig{Base: 26, Channels: 4},
		PWM: types.PWMConfig{Wrap: 4096, FreqHz: FreqForWrap(4096)},
		Timing: types.Timing{
			DebounceMs:  50,
			ReportMs:    1000,
			LoopMs:      100,
			BootDelayMs: 2000,
		},
		Display: types.DisplayConfig{
			Enabled: true,
			Bus:     "i2c1",
			SDA:     14,
			SCL:     15,
			Hz:      400_000,
			Addr:    0x3C,
			Width:   128,
			Height:  64,
		},
		Log: types.LogConfig{UART: "uart0", TX: 0, RX: 1, Baud: 115200},
	}
}

// Boards lists every known wiring by name.
var Boards = map[string]func() types.BoardConfig{
	"bitdoglab":       Default,
	"pico_breadboard": picoBreadboard,
	"rpi":             raspberryPi,
}

// Lookup returns the named board, validated.
func Lookup(name string) (types.BoardConfig, error) {
	mk, ok := Boards[name]
	if !ok {
		return types.BoardConfig{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "unknown board " + name}
	}
	cfg := mk()
	if err := Validate(cfg); err != nil {
		return types.BoardConfig{}, err
	}
	return cfg, nil
}

// Selected returns the board chosen at build time.
func Selected() (types.BoardConfig, error) { return Lookup(selectedBoard) }

// Channels returns the converter inputs for the X and Y axes.
func Channels(cfg types.BoardConfig) (x, y int) {
	if cfg.ADC.Virtual {
		return cfg.Pins.VRX, cfg.Pins.VRY
	}
	return cfg.Pins.VRX - cfg.ADC.Base, cfg.Pins.VRY - cfg.ADC.Base
}

// Plan derives the bus wiring the provider must bring up for cfg.
func Plan(cfg types.BoardConfig) types.ResourcePlan {
	var p types.ResourcePlan
	if cfg.Display.Enabled {
		p.I2C = append(p.I2C, types.I2CPlan{
			ID:  cfg.Display.Bus,
			SDA: cfg.Display.SDA,
			SCL: cfg.Display.SCL,
			Hz:  cfg.Display.Hz,
		})
	}
	if cfg.Log.UART != "" {
		p.UART = append(p.UART, types.UARTPlan{
			ID:   cfg.Log.UART,
			TX:   cfg.Log.TX,
			RX:   cfg.Log.RX,
			Baud: cfg.Log.Baud,
		})
	}
	return p
}

type pinUse struct {
	n    int
	what string
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: msg}
}

// Validate rejects wirings the firmware cannot run with.
func Validate(cfg types.BoardConfig) error {
	if cfg.PWM.Wrap == 0 {
		return invalid("pwm.wrap must be > 0")
	}
	if cfg.PWM.FreqHz == 0 {
		return invalid("pwm.freq_hz must be > 0")
	}
	if cfg.Timing.LoopMs == 0 {
		return invalid("timing.loop_ms must be > 0")
	}
	if cfg.Timing.ReportMs == 0 {
		return invalid("timing.report_ms must be > 0")
	}

	x, y := Channels(cfg)
	for _, ch := range []int{x, y} {
		if ch < 0 || ch >= cfg.ADC.Channels {
			return invalid("adc input " + strconvx.Itoa(ch) + " out of range")
		}
	}
	if x == y {
		return invalid("vrx and vry share an adc input")
	}

	used := map[int]string{}
	claim := func(pin int, what string) error {
		if prev, ok := used[pin]; ok {
			return invalid("pin " + strconvx.Itoa(pin) + " used by " + prev + " and " + what)
		}
		used[pin] = what
		return nil
	}
	pins := []pinUse{
		{cfg.Pins.SW, "sw"},
		{cfg.Pins.ButtonA, "button_a"},
		{cfg.Pins.ButtonB, "button_b"},
		{cfg.Pins.LEDBlue, "led_blue"},
		{cfg.Pins.LEDGreen, "led_green"},
		{cfg.Pins.LEDRed, "led_red"},
	}
	if !cfg.ADC.Virtual {
		pins = append(pins, pinUse{cfg.Pins.VRX, "vrx"}, pinUse{cfg.Pins.VRY, "vry"})
	}
	for _, p := range pins {
		if err := claim(p.n, p.what); err != nil {
			return err
		}
	}

	if cfg.Display.Enabled {
		if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 || cfg.Display.Height%8 != 0 {
			return invalid("display size must be positive with height a multiple of 8")
		}
		if err := claim(cfg.Display.SDA, "display.sda"); err != nil {
			return err
		}
		if err := claim(cfg.Display.SCL, "display.scl"); err != nil {
			return err
		}
	}
	if cfg.Log.UART != "" {
		if err := claim(cfg.Log.TX, "log.tx"); err != nil {
			return err
		}
		if err := claim(cfg.Log.RX, "log.rx"); err != nil {
			return err
		}
	}
	return nil
}
