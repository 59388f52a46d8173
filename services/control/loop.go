// Package control runs the joystick-to-LED loop: sample, drive, report.
package control

import (
	"context"
	"time"

	"joypwm-go/services/report"
	"joypwm-go/types"
	"joypwm-go/x/mathx"
	"joypwm-go/x/timex"
)

type AxisReader interface {
	Axes() types.AxisReading
}

// Button yields a debounced pressed state; each call samples the pin.
type Button interface {
	Poll() bool
}

type RawInput interface {
	Raw() bool
}

type Output interface {
	SetLevel(level uint16)
	Enable(on bool)
}

type Config struct {
	Wrap     uint16 // PWM wrap; duty is clamped to [0, Wrap]
	ReportMs uint32
	LoopMs   uint32
}

type Inputs struct {
	Stick  AxisReader
	Switch RawInput
	A, B   Button
}

type Outputs struct {
	Blue, Green Output
}

// Snapshot is what one Step read and wrote.
type Snapshot struct {
	NowMs    uint32
	Axes     types.AxisReading
	SW       bool
	A, B     bool
	Blue     types.PWMValue
	Green    types.PWMValue
	Reported bool
}

type Loop struct {
	cfg Config
	in  Inputs
	out Outputs
	log report.Logger
	clk timex.Clock

	lastReportMs uint32 // 0 at boot, so the first report waits a full period
}

func New(cfg Config, in Inputs, out Outputs, log report.Logger, clk timex.Clock) *Loop {
	if clk == nil {
		clk = timex.Boot{}
	}
	return &Loop{cfg: cfg, in: in, out: out, log: log, clk: clk}
}

// drive lights o at the axis magnitude while held, and turns it off otherwise.
func (l *Loop) drive(o Output, axis uint16, held bool) types.PWMValue {
	if !held {
		o.SetLevel(0)
		o.Enable(false)
		return types.PWMValue{}
	}
	level := mathx.Clamp(axis, 0, l.cfg.Wrap)
	o.SetLevel(level)
	o.Enable(true)
	return types.PWMValue{Level: level, Enabled: true}
}

// Step runs one iteration. It never fails.
func (l *Loop) Step() Snapshot {
	var s Snapshot
	s.Axes = l.in.Stick.Axes()
	s.SW = l.in.Switch.Raw()
	s.A = l.in.A.Poll()
	s.B = l.in.B.Poll()

	s.Blue = l.drive(l.out.Blue, s.Axes.X, s.A)
	s.Green = l.drive(l.out.Green, s.Axes.Y, s.B)

	s.NowMs = l.clk.NowMs()
	if s.NowMs-l.lastReportMs >= l.cfg.ReportMs {
		if l.log != nil {
			l.log.Report(types.Status{
				VRX:     s.Axes.X,
				VRY:     s.Axes.Y,
				SW:      s.SW,
				ButtonA: s.A,
				ButtonB: s.B,
				TSms:    s.NowMs,
			})
		}
		l.lastReportMs = s.NowMs
		s.Reported = true
	}
	return s
}

// Run steps every LoopMs until ctx is done. The sleep follows the step,
// so the period is LoopMs plus the step's own duration.
func (l *Loop) Run(ctx context.Context) error {
	period := time.Duration(l.cfg.LoopMs) * time.Millisecond
	t := time.NewTimer(period)
	defer t.Stop()

	for {
		l.Step()
		resetTimer(t, period)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
