package adc_joystick

import (
	"context"

	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
	"joypwm-go/x/mathx"
)

const (
	AxisX = 0
	AxisY = 1
)

// Device reads a two-axis analog stick from the shared converter.
type Device struct {
	id   string
	name string
	axes [2]core.ADCHandle
	reg  core.ResourceRegistry
}

func (d *Device) ID() string   { return d.id }
func (d *Device) Name() string { return d.name }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "adc_joystick",
		Detail: types.JoystickInfo{
			ChannelX: d.axes[AxisX].Channel(),
			ChannelY: d.axes[AxisY].Channel(),
		},
	}
}

func (d *Device) Init(ctx context.Context) error { return nil }

func (d *Device) Close() error {
	if d.reg != nil {
		for _, a := range d.axes {
			d.reg.ReleaseADC(d.id, a.Channel())
		}
	}
	return nil
}

// Read converts one axis (AxisX or AxisY). The result is always in
// [0, MaxADC-1]; anything the converter reports above that is clamped.
// An unknown axis reads 0.
func (d *Device) Read(axis int) uint16 {
	if axis != AxisX && axis != AxisY {
		return 0
	}
	return mathx.Min(d.axes[axis].Read(), types.MaxADC-1)
}

// Axes reads X then Y.
func (d *Device) Axes() types.AxisReading {
	x := d.Read(AxisX)
	y := d.Read(AxisY)
	return types.AxisReading{X: x, Y: y}
}
