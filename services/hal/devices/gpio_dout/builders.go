package gpio_dout

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/x/strx"
)

func init() {
	core.RegisterBuilder("gpio_led", builderLED{})
}

type builderLED struct{}

func (builderLED) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := parseParams(in.Params)
	if err != nil {
		return nil, err
	}
	ph, err := in.Res.Reg.ClaimPin(in.ID, p.Pin, core.FuncGPIOOut)
	if err != nil {
		return nil, err
	}
	p.Name = strx.Coalesce(p.Name, in.ID)
	return New(in.ID, p, ph.AsGPIO(), in.Res.Reg), nil
}

func parseParams(v any) (Params, error) {
	switch p := v.(type) {
	case Params:
		return p, nil
	case *Params:
		return *p, nil
	default:
		return Params{}, errcode.InvalidParams
	}
}
