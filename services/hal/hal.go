// Package hal turns a board config into claimed, initialised devices.
package hal

import (
	"context"
	"io"

	"joypwm-go/errcode"
	"joypwm-go/services/config"
	"joypwm-go/services/hal/devices/adc_joystick"
	"joypwm-go/services/hal/devices/gpio_button"
	"joypwm-go/services/hal/devices/gpio_dout"
	"joypwm-go/services/hal/devices/pwm_out"
	"joypwm-go/services/hal/devices/serial_log"
	"joypwm-go/services/hal/devices/ssd1306"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/services/hal/internal/provider"
	"joypwm-go/types"
	"joypwm-go/x/timex"
)

// Registry is the resource provider devices claim pins and buses from.
type Registry = core.ResourceRegistry

// DefaultRegistry returns the provider for the build target: the RP2040
// peripherals on the MCU, in-memory fakes elsewhere.
func DefaultRegistry(plan types.ResourcePlan) Registry {
	return provider.NewResourceRegistry(plan)
}

// Device ids, in build order.
const (
	IDLog      = "log"
	IDDisplay  = "display"
	IDSwitch   = "sw"
	IDButtonA  = "button_a"
	IDButtonB  = "button_b"
	IDJoystick = "joystick"
	IDBlue     = "led_blue"
	IDGreen    = "led_green"
	IDRed      = "led_red"
)

// Board is every device the firmware drives. Display and LogPort are nil
// when the board has none.
type Board struct {
	Config types.BoardConfig

	Joystick *adc_joystick.Device
	Switch   *gpio_button.Device
	ButtonA  *gpio_button.Device
	ButtonB  *gpio_button.Device
	Blue     *pwm_out.Device
	Green    *pwm_out.Device
	Red      *gpio_dout.Device
	Display  *ssd1306.Device
	LogPort  *serial_log.Device

	reg  Registry
	devs []core.Device
}

// Devices lists what Open builds for cfg.
func Devices(cfg types.BoardConfig) []types.HALDevice {
	var ds []types.HALDevice
	if cfg.Log.UART != "" {
		ds = append(ds, types.HALDevice{ID: IDLog, Type: "serial_log", Params: serial_log.Params{Bus: cfg.Log.UART, CRLF: true}})
	}
	if cfg.Display.Enabled {
		ds = append(ds, types.HALDevice{ID: IDDisplay, Type: "ssd1306", Params: ssd1306.Params{
			Bus:    cfg.Display.Bus,
			Addr:   cfg.Display.Addr,
			Width:  cfg.Display.Width,
			Height: cfg.Display.Height,
		}})
	}

	button := func(id string, pin int) types.HALDevice {
		return types.HALDevice{ID: id, Type: "gpio_button", Params: gpio_button.Params{
			Pin:        pin,
			Pull:       "up",
			Invert:     true,
			DebounceMs: cfg.Timing.DebounceMs,
		}}
	}
	x, y := config.Channels(cfg)
	pwm := func(id string, pin int) types.HALDevice {
		return types.HALDevice{ID: id, Type: "pwm_out", Params: pwm_out.Params{
			Pin:    pin,
			FreqHz: cfg.PWM.FreqHz,
			Top:    cfg.PWM.Wrap,
		}}
	}

	return append(ds,
		button(IDSwitch, cfg.Pins.SW),
		button(IDButtonA, cfg.Pins.ButtonA),
		button(IDButtonB, cfg.Pins.ButtonB),
		types.HALDevice{ID: IDJoystick, Type: "adc_joystick", Params: adc_joystick.Params{ChannelX: x, ChannelY: y}},
		pwm(IDBlue, cfg.Pins.LEDBlue),
		pwm(IDGreen, cfg.Pins.LEDGreen),
		types.HALDevice{ID: IDRed, Type: "gpio_led", Params: gpio_dout.Params{Pin: cfg.Pins.LEDRed}},
	)
}

// Open validates cfg, then builds and initialises every device in order.
// Any failure closes what was already built and is returned; callers
// treat it as fatal.
func Open(ctx context.Context, cfg types.BoardConfig, reg Registry, clk timex.Clock) (*Board, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = timex.Boot{}
	}
	b := &Board{Config: cfg, reg: reg}
	res := core.Resources{Reg: reg, Clock: clk}

	for _, d := range Devices(cfg) {
		dev, err := core.Build(ctx, d, res)
		if err != nil {
			b.closeDevices()
			return nil, err
		}
		b.devs = append(b.devs, dev)
		if err := b.bind(dev); err != nil {
			b.closeDevices()
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) bind(dev core.Device) error {
	var ok bool
	switch dev.ID() {
	case IDLog:
		b.LogPort, ok = dev.(*serial_log.Device)
	case IDDisplay:
		b.Display, ok = dev.(*ssd1306.Device)
	case IDSwitch:
		b.Switch, ok = dev.(*gpio_button.Device)
	case IDButtonA:
		b.ButtonA, ok = dev.(*gpio_button.Device)
	case IDButtonB:
		b.ButtonB, ok = dev.(*gpio_button.Device)
	case IDJoystick:
		b.Joystick, ok = dev.(*adc_joystick.Device)
	case IDBlue:
		b.Blue, ok = dev.(*pwm_out.Device)
	case IDGreen:
		b.Green, ok = dev.(*pwm_out.Device)
	case IDRed:
		b.Red, ok = dev.(*gpio_dout.Device)
	}
	if !ok {
		return &errcode.E{C: errcode.Error, Op: "bind", Msg: dev.ID()}
	}
	return nil
}

// LogWriter returns the UART mirror, or nil when the board has none.
func (b *Board) LogWriter() io.Writer {
	if b.LogPort == nil {
		return nil
	}
	return b.LogPort
}

// Info describes every built device, in build order.
func (b *Board) Info() []types.Info {
	out := make([]types.Info, 0, len(b.devs))
	for _, d := range b.devs {
		out = append(out, d.Info())
	}
	return out
}

func (b *Board) closeDevices() {
	for i := len(b.devs) - 1; i >= 0; i-- {
		_ = b.devs[i].Close()
	}
	b.devs = nil
}

// Close drives the LEDs off, releases every claim and stops the provider.
func (b *Board) Close() error {
	b.closeDevices()
	if b.reg != nil {
		b.reg.Close()
	}
	return nil
}
