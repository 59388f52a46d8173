package serial_log

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
)

func init() { core.RegisterBuilder("serial_log", builder{}) }

type Params struct {
	Bus string // "uart0" or "uart1"; must appear in the resource plan
	// CRLF rewrites "\n" as "\r\n" for terminals that expect it.
	CRLF bool
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok || p.Bus == "" {
		return nil, errcode.InvalidParams
	}
	sp, err := in.Res.Reg.ClaimSerial(in.ID, core.ResourceID(p.Bus))
	if err != nil {
		return nil, err
	}
	return &Device{id: in.ID, bus: core.ResourceID(p.Bus), port: sp, crlf: p.CRLF, reg: in.Res.Reg}, nil
}
