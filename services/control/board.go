package control

import (
	"joypwm-go/services/hal"
	"joypwm-go/services/report"
	"joypwm-go/x/timex"
)

// ForBoard wires a loop to an opened board using the board's timing.
func ForBoard(b *hal.Board, log report.Logger, clk timex.Clock) *Loop {
	cfg := b.Config
	return New(
		Config{Wrap: cfg.PWM.Wrap, ReportMs: cfg.Timing.ReportMs, LoopMs: cfg.Timing.LoopMs},
		Inputs{Stick: b.Joystick, Switch: b.Switch, A: b.ButtonA, B: b.ButtonB},
		Outputs{Blue: b.Blue, Green: b.Green},
		log, clk,
	)
}
