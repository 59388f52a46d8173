package config

import (
	"strings"
	"testing"

	"joypwm-go/errcode"
	"joypwm-go/types"
)

func TestDefaultMatchesReferenceWiring(t *testing.T) {
	c := Default()
	if c.Pins.VRX != 26 || c.Pins.VRY != 27 || c.Pins.SW != 22 {
		t.Fatalf("joystick pins %+v", c.Pins)
	}
	if c.Pins.ButtonA != 5 || c.Pins.ButtonB != 6 {
		t.Fatalf("button pins %+v", c.Pins)
	}
	if c.Pins.LEDBlue != 12 || c.Pins.LEDGreen != 11 || c.Pins.LEDRed != 13 {
		t.Fatalf("led pins %+v", c.Pins)
	}
	if c.PWM.Wrap != 4096 || c.Timing.DebounceMs != 50 || c.Timing.ReportMs != 1000 || c.Timing.LoopMs != 100 {
		t.Fatalf("timing/pwm %+v %+v", c.PWM, c.Timing)
	}
	if c.PWM.FreqHz != 30_510 {
		t.Fatalf("freq=%d want 30510", c.PWM.FreqHz)
	}
	if c.Display.Addr != 0x3C || c.Display.SDA != 14 || c.Display.SCL != 15 || c.Display.Hz != 400_000 {
		t.Fatalf("display %+v", c.Display)
	}
	if err := Validate(c); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
}

func TestLookupAllBoards(t *testing.T) {
	for name := range Boards {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if c.Name != name {
			t.Fatalf("board %s reports name %s", name, c.Name)
		}
	}
	if _, err := Lookup("nope"); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("unknown board err=%v", err)
	}
	if _, err := Selected(); err != nil {
		t.Fatalf("selected: %v", err)
	}
}

func TestChannels(t *testing.T) {
	if x, y := Channels(Default()); x != 0 || y != 1 {
		t.Fatalf("pico channels %d,%d", x, y)
	}
	c, _ := Lookup("rpi")
	if x, y := Channels(c); x != 0 || y != 1 {
		t.Fatalf("rpi channels %d,%d", x, y)
	}
}

func TestPlan(t *testing.T) {
	p := Plan(Default())
	if len(p.I2C) != 1 || p.I2C[0] != (types.I2CPlan{ID: "i2c1", SDA: 14, SCL: 15, Hz: 400_000}) {
		t.Fatalf("i2c plan %+v", p.I2C)
	}
	if len(p.UART) != 1 || p.UART[0].ID != "uart0" {
		t.Fatalf("uart plan %+v", p.UART)
	}
	c, _ := Lookup("pico_breadboard")
	if p := Plan(c); len(p.I2C) != 0 || len(p.UART) != 0 {
		t.Fatalf("breadboard plan %+v", p)
	}
}

func TestValidateRejects(t *testing.T) {
	type C struct {
		name string
		mut  func(*types.BoardConfig)
		want string
	}
	for _, c := range []C{
		{"zero wrap", func(b *types.BoardConfig) { b.PWM.Wrap = 0 }, "wrap"},
		{"zero freq", func(b *types.BoardConfig) { b.PWM.FreqHz = 0 }, "freq"},
		{"zero loop", func(b *types.BoardConfig) { b.Timing.LoopMs = 0 }, "loop_ms"},
		{"zero report", func(b *types.BoardConfig) { b.Timing.ReportMs = 0 }, "report_ms"},
		{"vrx not adc", func(b *types.BoardConfig) { b.Pins.VRX = 20 }, "adc input"},
		{"same axis", func(b *types.BoardConfig) { b.Pins.VRY = 26 }, "share"},
		{"dup led", func(b *types.BoardConfig) { b.Pins.LEDGreen = 12 }, "pin 12"},
		{"led on display", func(b *types.BoardConfig) { b.Pins.LEDRed = 14 }, "display.sda"},
		{"button on uart", func(b *types.BoardConfig) { b.Pins.ButtonA = 0 }, "log.tx"},
		{"bad display", func(b *types.BoardConfig) { b.Display.Height = 60 }, "display size"},
	} {
		b := Default()
		c.mut(&b)
		err := Validate(b)
		if errcode.Of(err) != errcode.InvalidConfig {
			t.Fatalf("%s: err=%v want invalid_config", c.name, err)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: %q does not mention %q", c.name, err.Error(), c.want)
		}
	}
}

func TestValidateVirtualADCSkipsPinCheck(t *testing.T) {
	c, _ := Lookup("rpi")
	// Input numbers may coincide with GPIO numbers in use elsewhere.
	c.Pins.VRX = 0
	c.Pins.SW = 0
	if err := Validate(c); err != nil {
		t.Fatalf("virtual adc: %v", err)
	}
}
