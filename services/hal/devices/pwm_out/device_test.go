//go:build !(rp2040 || rp2350)

package pwm_out

import (
	"context"
	"testing"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/services/hal/internal/provider"
	"joypwm-go/types"
)

func build(t *testing.T, reg *provider.HostRegistry, id string, p Params) *Device {
	t.Helper()
	dev, err := core.Build(context.Background(), types.HALDevice{ID: id, Type: "pwm_out", Params: p}, core.Resources{Reg: reg})
	if err != nil {
		t.Fatalf("build %s: %v", id, err)
	}
	return dev.(*Device)
}

func TestInitLeavesChannelDisabledAtZero(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	d := build(t, reg, "led_blue", Params{Pin: 12, FreqHz: 30_510, Top: 4096})

	freq, top, ok := reg.PWM(12).Config()
	if !ok || freq != 30_510 || top != 4096 {
		t.Fatalf("config freq=%d top=%d ok=%v", freq, top, ok)
	}
	if lvl, en, out := reg.PWM(12).State(); lvl != 0 || en || out != 0 {
		t.Fatalf("after init lvl=%d en=%v out=%d", lvl, en, out)
	}
	if d.Level() != 0 || d.Enabled() {
		t.Fatal("device state not reset")
	}

	info := d.Info().Detail.(types.PWMInfo)
	if info.Slice != 6 || info.Channel != "A" || info.Top != 4096 {
		t.Fatalf("info=%+v", info)
	}
}

func TestSetLevelAndEnable(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	d := build(t, reg, "led_green", Params{Pin: 11, FreqHz: 30_510, Top: 4096})

	d.SetLevel(4095)
	d.Enable(true)
	if _, en, out := reg.PWM(11).State(); !en || out != 4095 {
		t.Fatalf("en=%v out=%d", en, out)
	}
	if v := d.Value(); v.Level != 4095 || !v.Enabled {
		t.Fatalf("value=%+v", v)
	}

	d.SetLevel(0)
	d.Enable(false)
	if _, en, out := reg.PWM(11).State(); en || out != 0 {
		t.Fatalf("disabled en=%v out=%d", en, out)
	}
}

func TestCloseReleasesPin(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	d := build(t, reg, "led_blue", Params{Pin: 12, FreqHz: 1000, Top: 4096})
	d.SetLevel(100)
	d.Enable(true)
	_ = d.Close()
	if reg.Owner(12) != "" || reg.SliceUsers(6) != 0 {
		t.Fatalf("owner=%q users=%d", reg.Owner(12), reg.SliceUsers(6))
	}
}

func TestSharedSliceFrequency(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	build(t, reg, "blue", Params{Pin: 12, FreqHz: 1000, Top: 4096})
	_, err := core.Build(context.Background(), types.HALDevice{
		ID: "red", Type: "pwm_out", Params: Params{Pin: 13, FreqHz: 2000, Top: 4096},
	}, core.Resources{Reg: reg})
	if errcode.Of(err) != errcode.Conflict {
		t.Fatalf("err=%v want conflict", err)
	}
	// Failed init must not leave the pin claimed.
	if reg.Owner(13) != "" {
		t.Fatalf("pin 13 still owned by %q", reg.Owner(13))
	}
}

func TestBadParams(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	_, err := core.Build(context.Background(), types.HALDevice{ID: "x", Type: "pwm_out", Params: Params{Pin: 12}}, core.Resources{Reg: reg})
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("zero top err=%v", err)
	}
}
