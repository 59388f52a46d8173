package core

import (
	"context"
	"sync"

	"joypwm-go/errcode"
	"joypwm-go/types"
	"joypwm-go/x/fmtx"
)

var (
	regMu    sync.RWMutex
	builders = map[string]Builder{}
)

func RegisterBuilder(typ string, b Builder) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := builders[typ]; exists {
		panic(fmtx.Sprintf("duplicate device builder: %s", typ))
	}
	builders[typ] = b
}

func lookupBuilder(typ string) (Builder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	b, ok := builders[typ]
	return b, ok
}

// Build constructs and initialises one device from its HAL entry.
// A device whose Init fails is closed before the error is returned.
func Build(ctx context.Context, d types.HALDevice, res Resources) (Device, error) {
	b, ok := lookupBuilder(d.Type)
	if !ok {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "build", Msg: d.ID + ": no builder " + d.Type}
	}
	dev, err := b.Build(ctx, BuilderInput{ID: d.ID, Type: d.Type, Params: d.Params, Res: res})
	if err != nil {
		return nil, errcode.Wrap(err, "build", d.ID)
	}
	if err := dev.Init(ctx); err != nil {
		_ = dev.Close()
		return nil, errcode.Wrap(err, "init", d.ID)
	}
	return dev, nil
}
