package provider

import (
	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
)

// pinTable records which device holds each pin and for what.
// Callers hold the registry lock.
type pinTable map[int]pinOwner

type pinOwner struct {
	devID string
	fn    core.PinFunc
}

func (t pinTable) claim(devID string, n int, fn core.PinFunc) error {
	if !inBoardRange(n) {
		return errcode.UnknownPin
	}
	if o, inUse := t[n]; inUse && o.devID != "" {
		return errcode.PinInUse
	}
	t[n] = pinOwner{devID: devID, fn: fn}
	return nil
}

// release reports the function the pin was held for, and whether devID held it.
func (t pinTable) release(devID string, n int) (core.PinFunc, bool) {
	o, ok := t[n]
	if !ok || o.devID != devID {
		return 0, false
	}
	delete(t, n)
	return o.fn, true
}

// busTable records single-owner buses (serial ports, displays).
type busTable map[core.ResourceID]string

func (t busTable) claim(devID string, id core.ResourceID) error {
	if owner, taken := t[id]; taken && owner != "" && owner != devID {
		return errcode.Conflict
	}
	t[id] = devID
	return nil
}

func (t busTable) release(devID string, id core.ResourceID) {
	if owner, ok := t[id]; ok && owner == devID {
		delete(t, id)
	}
}
