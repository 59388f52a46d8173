//go:build linux

package main

import (
	log "github.com/sirupsen/logrus"

	"joypwm-go/services/report"
	"joypwm-go/types"
)

// statusLogger emits each status line as a logrus entry carrying the raw
// values as fields.
type statusLogger struct {
	log log.FieldLogger
}

var _ report.Logger = (*statusLogger)(nil)

func (l *statusLogger) Report(st types.Status) {
	entry := l.log.WithFields(log.Fields{
		"vrx":      st.VRX,
		"vry":      st.VRY,
		"sw":       st.SW,
		"button_a": st.ButtonA,
		"button_b": st.ButtonB,
		"ts_ms":    st.TSms,
	})
	for _, line := range report.Lines(st) {
		entry.Info(line)
	}
}
