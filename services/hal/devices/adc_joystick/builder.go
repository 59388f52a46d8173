package adc_joystick

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/x/strx"
)

func init() { core.RegisterBuilder("adc_joystick", builder{}) }

// Params name converter inputs, not GPIOs (input 0 is GP26 on the RP2040).
type Params struct {
	ChannelX int
	ChannelY int
	Name     string
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok || p.ChannelX == p.ChannelY {
		return nil, errcode.InvalidParams
	}
	x, err := in.Res.Reg.ClaimADC(in.ID, p.ChannelX)
	if err != nil {
		return nil, err
	}
	y, err := in.Res.Reg.ClaimADC(in.ID, p.ChannelY)
	if err != nil {
		in.Res.Reg.ReleaseADC(in.ID, p.ChannelX)
		return nil, err
	}
	return &Device{
		id:   in.ID,
		name: strx.Coalesce(p.Name, in.ID),
		axes: [2]core.ADCHandle{x, y},
		reg:  in.Res.Reg,
	}, nil
}
