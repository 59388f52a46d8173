// cmd/boardtest/main.go
package main

import (
	"context"
	"io"
	"time"

	"joypwm-go/services/config"
	"joypwm-go/services/hal"
	"joypwm-go/services/hal/devices/pwm_out"
	"joypwm-go/services/report"
	"joypwm-go/types"
	"joypwm-go/x/fmtx"
	"joypwm-go/x/ramp"
	"joypwm-go/x/timex"
)

// ---------- Configuration ----------

const (
	bootDelay = 2 * time.Second

	sweepHalfMs = 1000
	sweepSteps  = 64

	sampleEvery = 200 * time.Millisecond
	sampleFor   = 10 * time.Second
)

// ---------- Minimal output to console + UART mirror ----------

type out struct {
	w io.Writer
}

func (o *out) println(s string) {
	println(s)
	if o.w != nil {
		_, _ = io.WriteString(o.w, s+"\n")
	}
}

func (o *out) printf(format string, a ...any) {
	o.println(fmtx.Sprintf(format, a...))
}

// ---------- Steps ----------

func sleepTick(d time.Duration) bool {
	time.Sleep(d)
	return true
}

func sweep(o *out, name string, led *pwm_out.Device) {
	o.printf("[boardtest] sweep %s 0..%d..0", name, led.Top())
	led.SetLevel(0)
	led.Enable(true)
	ramp.Sweep(led.Top(), sweepHalfMs, sweepSteps, sleepTick, led.SetLevel)
	led.SetLevel(0)
	led.Enable(false)
}

func describe(o *out, in types.Info) {
	switch d := in.Detail.(type) {
	case types.PWMInfo:
		o.printf("[boardtest] %s pin=%d slice=%d%s top=%d freq=%d", in.Driver, d.Pin, d.Slice, d.Channel, d.Top, d.FreqHz)
	case types.ButtonInfo:
		o.printf("[boardtest] %s pin=%d debounce=%dms", in.Driver, d.Pin, d.DebounceMs)
	case types.JoystickInfo:
		o.printf("[boardtest] %s adc x=%d y=%d", in.Driver, d.ChannelX, d.ChannelY)
	case types.DisplayInfo:
		o.printf("[boardtest] %s %s addr=%x %dx%d", in.Driver, d.Bus, d.Addr, d.Width, d.Height)
	case types.LEDInfo:
		o.printf("[boardtest] %s pin=%d", in.Driver, d.Pin)
	default:
		o.printf("[boardtest] %s", in.Driver)
	}
}

// ---------- Main ----------

func main() {
	time.Sleep(bootDelay)

	cfg, err := config.Selected()
	if err != nil {
		println("[boardtest] config:", err.Error())
		return
	}
	clk := timex.Boot{}
	b, err := hal.Open(context.Background(), cfg, hal.DefaultRegistry(config.Plan(cfg)), clk)
	if err != nil {
		println("[boardtest] hal:", err.Error())
		return
	}
	defer b.Close()

	o := &out{w: b.LogWriter()}
	o.printf("[boardtest] board %s", cfg.Name)
	for _, in := range b.Info() {
		describe(o, in)
	}

	sweep(o, "blue", b.Blue)
	sweep(o, "green", b.Green)

	o.println("[boardtest] red on")
	b.Red.Set(true)
	time.Sleep(500 * time.Millisecond)
	b.Red.Set(false)

	if b.Display != nil {
		area := b.Display.FullArea()
		frame := make([]byte, area.BufferLen())
		for i := range frame {
			frame[i] = 0xFF
		}
		if err := b.Display.Render(frame, area); err != nil {
			o.printf("[boardtest] display fill: %s", err.Error())
		}
		time.Sleep(500 * time.Millisecond)
		_ = b.Display.Render(make([]byte, area.BufferLen()), area)
	}

	o.println("[boardtest] move the stick and press the buttons")
	deadline := time.Now().Add(sampleFor)
	for time.Now().Before(deadline) {
		ax := b.Joystick.Axes()
		st := types.Status{
			VRX:     ax.X,
			VRY:     ax.Y,
			SW:      b.Switch.Raw(),
			ButtonA: b.ButtonA.Poll(),
			ButtonB: b.ButtonB.Poll(),
			TSms:    clk.NowMs(),
		}
		for _, l := range report.Lines(st) {
			o.println(l)
		}
		time.Sleep(sampleEvery)
	}
	o.println("[boardtest] done")
}
