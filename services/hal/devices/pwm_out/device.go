package pwm_out

import (
	"context"

	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
)

// Device is one PWM channel with a fixed wrap. After Init the channel is
// disabled at level 0.
type Device struct {
	id   string
	name string
	pin  int
	pwm  core.PWMHandle
	reg  core.ResourceRegistry
	freq uint64
	top  uint16

	level   uint16
	enabled bool
}

func (d *Device) ID() string   { return d.id }
func (d *Device) Name() string { return d.name }

func (d *Device) Info() types.Info {
	slice, ch, pin := d.pwm.Info()
	return types.Info{
		SchemaVersion: 1,
		Driver:        "pwm_out",
		Detail: types.PWMInfo{
			Pin:     pin,
			Slice:   slice,
			Channel: string(ch),
			FreqHz:  d.freq,
			Top:     d.top,
		},
	}
}

func (d *Device) Init(ctx context.Context) error {
	if err := d.pwm.Configure(d.freq, d.top); err != nil {
		return err
	}
	d.SetLevel(0)
	d.Enable(false)
	return nil
}

// Close drives 0 and releases the pin (and its share of the slice).
func (d *Device) Close() error {
	d.pwm.Enable(false)
	d.level, d.enabled = 0, false
	if d.reg != nil {
		d.reg.ReleasePin(d.id, d.pin)
	}
	return nil
}

// SetLevel writes a compare count in [0, Top]. Callers clamp.
func (d *Device) SetLevel(level uint16) {
	d.level = level
	d.pwm.Set(level)
}

func (d *Device) Enable(on bool) {
	d.enabled = on
	d.pwm.Enable(on)
}

func (d *Device) Level() uint16 { return d.level }
func (d *Device) Enabled() bool { return d.enabled }
func (d *Device) Top() uint16   { return d.top }
func (d *Device) Value() types.PWMValue {
	return types.PWMValue{Level: d.level, Enabled: d.enabled}
}
