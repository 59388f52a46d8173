package gpio_button

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/x/strx"
	"joypwm-go/x/timex"
)

func init() { core.RegisterBuilder("gpio_button", builder{}) }

type Params struct {
	Pin        int
	Pull       string // "up" (default), "down", "none"
	Invert     bool   // true for active-low wiring
	DebounceMs uint16
	Name       string
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok || p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	pull, ok := parsePull(p.Pull)
	if !ok {
		return nil, errcode.InvalidParams
	}
	ph, err := in.Res.Reg.ClaimPin(in.ID, p.Pin, core.FuncGPIOIn)
	if err != nil {
		return nil, err
	}
	clk := in.Res.Clock
	if clk == nil {
		clk = timex.Boot{}
	}
	return &Device{
		id:       in.ID,
		name:     strx.Coalesce(p.Name, in.ID),
		pinN:     p.Pin,
		gpio:     ph.AsGPIO(),
		pull:     pull,
		invert:   p.Invert,
		windowMs: uint32(p.DebounceMs),
		clk:      clk,
		reg:      in.Res.Reg,
	}, nil
}

func parsePull(s string) (core.Pull, bool) {
	switch s {
	case "", "up":
		return core.PullUp, true
	case "down":
		return core.PullDown, true
	case "none":
		return core.PullNone, true
	}
	return 0, false
}
