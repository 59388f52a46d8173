package gpio_dout

import (
	"context"

	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
)

type Params struct {
	Pin       int
	ActiveLow bool
	Initial   bool // logical level applied at Init
	Name      string
}

// Device is a plain digital output, such as an LED that is only ever on
// or off.
type Device struct {
	id        string
	pin       core.GPIOHandle
	pinN      int
	activeLow bool
	initial   bool
	name      string
	reg       core.ResourceRegistry
}

func New(id string, p Params, h core.GPIOHandle, reg core.ResourceRegistry) *Device {
	return &Device{
		id:        id,
		pin:       h,
		pinN:      p.Pin,
		activeLow: p.ActiveLow,
		initial:   p.Initial,
		name:      p.Name,
		reg:       reg,
	}
}

func (d *Device) ID() string   { return d.id }
func (d *Device) Name() string { return d.name }

func (d *Device) Info() types.Info {
	return types.Info{SchemaVersion: 1, Driver: "gpio_dout", Detail: types.LEDInfo{Pin: d.pinN}}
}

func (d *Device) Init(ctx context.Context) error {
	return d.pin.ConfigureOutput(d.phys(d.initial))
}

func (d *Device) Close() error {
	d.pin.Set(d.phys(false))
	if d.reg != nil {
		d.reg.ReleasePin(d.id, d.pinN)
	}
	return nil
}

func (d *Device) Set(on bool) { d.pin.Set(d.phys(on)) }
func (d *Device) Get() bool   { return d.phys(d.pin.Get()) }
func (d *Device) Toggle()     { d.pin.Toggle() }

func (d *Device) Value() types.LEDValue { return types.LEDValue{On: d.Get()} }

// phys maps logical <-> physical; the mapping is its own inverse.
func (d *Device) phys(v bool) bool {
	if d.activeLow {
		return !v
	}
	return v
}
