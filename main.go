package main

import (
	"context"
	"os"
	"time"

	"joypwm-go/services/config"
	"joypwm-go/services/control"
	"joypwm-go/services/hal"
	"joypwm-go/services/report"
	"joypwm-go/x/timex"
)

func main() {
	cfg, err := config.Selected()
	if err != nil {
		halt("config", err)
	}

	// Allow USB CDC to enumerate before we print.
	time.Sleep(time.Duration(cfg.Timing.BootDelayMs) * time.Millisecond)
	println("[main] board", cfg.Name)

	ctx := context.Background()
	clk := timex.Boot{}
	board, err := hal.Open(ctx, cfg, hal.DefaultRegistry(config.Plan(cfg)), clk)
	if err != nil {
		halt("hal", err)
	}
	for _, in := range board.Info() {
		println("[main] device", in.Driver)
	}

	loop := control.ForBoard(board, report.NewWriter(os.Stdout, board.LogWriter()), clk)
	println("[main] running")
	_ = loop.Run(ctx)
}

// halt reports a fatal init error and parks; outputs stay in their
// power-on state.
func halt(stage string, err error) {
	println("[main] fatal:", stage, err.Error())
	for {
		time.Sleep(time.Hour)
	}
}
