package pwm_out

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/x/strx"
)

func init() { core.RegisterBuilder("pwm_out", builder{}) }

type Params struct {
	Pin    int
	FreqHz uint64 // slice frequency; channels sharing a slice must agree
	Top    uint16 // wrap value; levels run 0..Top
	Name   string
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok || p.Pin < 0 || p.Top == 0 {
		return nil, errcode.InvalidParams
	}
	ph, err := in.Res.Reg.ClaimPin(in.ID, p.Pin, core.FuncPWM)
	if err != nil {
		return nil, err
	}
	return &Device{
		id:   in.ID,
		name: strx.Coalesce(p.Name, in.ID),
		pin:  p.Pin,
		pwm:  ph.AsPWM(),
		reg:  in.Res.Reg,
		freq: p.FreqHz,
		top:  p.Top,
	}, nil
}
