package ssd1306

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
)

func init() { core.RegisterBuilder("ssd1306", builder{}) }

type Params struct {
	Bus    string // I2C bus id from the resource plan, e.g. "i2c1"
	Addr   uint16 // 0x3C on most 128x64 modules
	Width  int16
	Height int16
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok || p.Bus == "" || p.Width <= 0 || p.Height <= 0 || p.Height%8 != 0 {
		return nil, errcode.InvalidParams
	}
	spec := core.DisplaySpec{Bus: core.ResourceID(p.Bus), Addr: p.Addr, Width: p.Width, Height: p.Height}
	fb, err := in.Res.Reg.ClaimDisplay(in.ID, spec)
	if err != nil {
		return nil, err
	}
	return &Device{id: in.ID, spec: spec, fb: fb, reg: in.Res.Reg}, nil
}
