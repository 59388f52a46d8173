package gpio_button

import (
	"context"

	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
	"joypwm-go/x/timex"
)

// State is the debounced view of one button.
type State struct {
	Pressed bool   // last committed level
	LastMs  uint32 // time of the last committed transition
}

// Debounce commits raw when it differs from the stable level and at least
// windowMs have passed since the previous commit. Time arithmetic is
// unsigned so a wrapped clock still measures the right interval.
func Debounce(raw bool, nowMs uint32, st *State, windowMs uint32) bool {
	if raw != st.Pressed && nowMs-st.LastMs >= windowMs {
		st.Pressed = raw
		st.LastMs = nowMs
	}
	return st.Pressed
}

type Device struct {
	id       string
	name     string
	pinN     int
	gpio     core.GPIOHandle
	pull     core.Pull
	invert   bool
	windowMs uint32
	clk      timex.Clock
	reg      core.ResourceRegistry

	st State
}

func (d *Device) ID() string   { return d.id }
func (d *Device) Name() string { return d.name }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "gpio_button",
		Detail:        types.ButtonInfo{Pin: d.pinN, DebounceMs: uint16(d.windowMs)},
	}
}

// Init configures the input. The stable state starts released at t=0.
func (d *Device) Init(ctx context.Context) error {
	d.st = State{}
	return d.gpio.ConfigureInput(d.pull)
}

func (d *Device) Close() error {
	if d.reg != nil {
		d.reg.ReleasePin(d.id, d.pinN)
	}
	return nil
}

// Raw is the instantaneous logical level, without debouncing.
func (d *Device) Raw() bool { return d.logicalPressed(d.gpio.Get()) }

// Poll samples the pin and returns the debounced pressed state.
func (d *Device) Poll() bool {
	return Debounce(d.Raw(), d.clk.NowMs(), &d.st, d.windowMs)
}

func (d *Device) State() State { return d.st }

func (d *Device) Value() types.ButtonValue { return types.ButtonValue{Pressed: d.st.Pressed} }

func (d *Device) logicalPressed(level bool) bool {
	if d.invert {
		return !level
	}
	return level
}
