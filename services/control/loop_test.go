package control

import (
	"context"
	"testing"
	"time"

	"joypwm-go/types"
	"joypwm-go/x/timex"
)

// ---- Test doubles ----

type fakeStick struct{ x, y uint16 }

func (f *fakeStick) Axes() types.AxisReading { return types.AxisReading{X: f.x, Y: f.y} }

type fakeButton struct{ pressed bool }

func (f *fakeButton) Poll() bool { return f.pressed }
func (f *fakeButton) Raw() bool  { return f.pressed }

type fakeOut struct {
	level   uint16
	enabled bool
	writes  int
}

func (f *fakeOut) SetLevel(l uint16) { f.level = l; f.writes++ }
func (f *fakeOut) Enable(on bool)    { f.enabled = on }

type recorder struct{ got []types.Status }

func (r *recorder) Report(st types.Status) { r.got = append(r.got, st) }

type rig struct {
	stick       *fakeStick
	sw, a, b    *fakeButton
	blue, green *fakeOut
	log         *recorder
	clk         *timex.Manual
	loop        *Loop
}

func newRig() *rig {
	r := &rig{
		stick: &fakeStick{},
		sw:    &fakeButton{}, a: &fakeButton{}, b: &fakeButton{},
		blue: &fakeOut{}, green: &fakeOut{},
		log: &recorder{},
		clk: &timex.Manual{},
	}
	r.loop = New(
		Config{Wrap: 4096, ReportMs: 1000, LoopMs: 100},
		Inputs{Stick: r.stick, Switch: r.sw, A: r.a, B: r.b},
		Outputs{Blue: r.blue, Green: r.green},
		r.log, r.clk,
	)
	return r
}

// ---- Tests ----

func TestPressedDrivesAxisMagnitude(t *testing.T) {
	r := newRig()
	r.a.pressed, r.b.pressed = true, true
	for _, m := range []uint16{0, 1, 2048, 4095} {
		r.stick.x, r.stick.y = m, 4095-m
		s := r.loop.Step()
		if r.blue.level != m || !r.blue.enabled {
			t.Fatalf("m=%d: blue level=%d enabled=%v", m, r.blue.level, r.blue.enabled)
		}
		if r.green.level != 4095-m || !r.green.enabled {
			t.Fatalf("m=%d: green level=%d enabled=%v", m, r.green.level, r.green.enabled)
		}
		if s.Blue != (types.PWMValue{Level: m, Enabled: true}) {
			t.Fatalf("snapshot blue %+v", s.Blue)
		}
	}
}

func TestDutyClampedToWrap(t *testing.T) {
	r := newRig()
	r.loop.cfg.Wrap = 1000
	r.a.pressed = true
	r.stick.x = 4095
	r.loop.Step()
	if r.blue.level != 1000 {
		t.Fatalf("level=%d want 1000", r.blue.level)
	}
}

func TestReleasedDisablesRegardlessOfAxes(t *testing.T) {
	r := newRig()
	r.a.pressed, r.b.pressed = true, true
	r.stick.x, r.stick.y = 3000, 3000
	r.loop.Step()

	r.a.pressed, r.b.pressed = false, false
	for _, m := range []uint16{0, 2048, 4095} {
		r.stick.x, r.stick.y = m, m
		s := r.loop.Step()
		if r.blue.level != 0 || r.blue.enabled || r.green.level != 0 || r.green.enabled {
			t.Fatalf("m=%d: blue=%+v green=%+v", m, *r.blue, *r.green)
		}
		if s.Blue != (types.PWMValue{}) || s.Green != (types.PWMValue{}) {
			t.Fatalf("snapshot %+v", s)
		}
	}
}

func TestPairsAreIndependent(t *testing.T) {
	r := newRig()
	r.a.pressed = true
	r.stick.x, r.stick.y = 2048, 1234
	r.clk.Set(1000)
	s := r.loop.Step()

	if r.blue.level != 2048 || !r.blue.enabled {
		t.Fatalf("blue=%+v", *r.blue)
	}
	if r.green.level != 0 || r.green.enabled {
		t.Fatalf("green=%+v", *r.green)
	}
	if !s.Reported || len(r.log.got) != 1 {
		t.Fatalf("reported=%v logs=%d", s.Reported, len(r.log.got))
	}
	want := types.Status{VRX: 2048, VRY: 1234, ButtonA: true, TSms: 1000}
	if r.log.got[0] != want {
		t.Fatalf("status=%+v want %+v", r.log.got[0], want)
	}
}

func TestReportCadence(t *testing.T) {
	r := newRig()
	var reportedAt []uint32
	// 100 ms steps from boot: t = 0, 100, ..., 3000.
	for i := 0; i <= 30; i++ {
		s := r.loop.Step()
		if s.Reported {
			reportedAt = append(reportedAt, s.NowMs)
		}
		r.clk.Advance(100)
	}
	want := []uint32{1000, 2000, 3000}
	if len(reportedAt) != len(want) {
		t.Fatalf("reports at %v want %v", reportedAt, want)
	}
	for i := range want {
		if reportedAt[i] != want[i] {
			t.Fatalf("reports at %v want %v", reportedAt, want)
		}
	}
}

// The firmware sleeps through its boot delay before the first step, so
// the first step already sits past one report period since boot.
func TestFirstStepAfterBootDelayReports(t *testing.T) {
	r := newRig()
	r.clk.Set(2000)
	if s := r.loop.Step(); !s.Reported || s.NowMs != 2000 {
		t.Fatalf("first step after delay: %+v", s)
	}
	r.clk.Advance(100)
	if r.loop.Step().Reported {
		t.Fatal("reported again within the period")
	}
	r.clk.Set(3000)
	if !r.loop.Step().Reported {
		t.Fatal("no report one period later")
	}
}

func TestReportWithJitter(t *testing.T) {
	r := newRig()
	// Steps that overrun: report on the first step where elapsed >= 1000,
	// and the next period is measured from that step.
	steps := []uint32{0, 450, 900, 1350, 1800, 2250, 2700}
	var at []uint32
	for _, ms := range steps {
		r.clk.Set(ms)
		if r.loop.Step().Reported {
			at = append(at, ms)
		}
	}
	if len(at) != 2 || at[0] != 1350 || at[1] != 2700 {
		t.Fatalf("reports at %v want [1350 2700]", at)
	}
}

func TestSwitchIsReportedOnly(t *testing.T) {
	r := newRig()
	r.sw.pressed = true
	r.clk.Set(1000)
	s := r.loop.Step()
	if !s.SW || !r.log.got[0].SW {
		t.Fatal("SW not reported")
	}
	if r.blue.enabled || r.green.enabled {
		t.Fatal("SW must not drive outputs")
	}
}

func TestNilLogger(t *testing.T) {
	r := newRig()
	r.loop.log = nil
	r.clk.Set(5000)
	if !r.loop.Step().Reported {
		t.Fatal("throttle should still advance without a logger")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig()
	r.loop.cfg.LoopMs = 1
	r.a.pressed = true
	r.stick.x = 42

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.loop.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("err=%v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if r.blue.writes == 0 {
		t.Fatal("Run never stepped")
	}
}
