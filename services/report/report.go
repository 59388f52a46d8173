// Package report formats the periodic status block and fans it out to
// one or more sinks.
package report

import (
	"io"
	"sync"

	"joypwm-go/types"
	"joypwm-go/x/fmtx"
	"joypwm-go/x/mathx"
)

// Logger receives one status per report period.
type Logger interface {
	Report(st types.Status)
}

// fullScale is the largest 12-bit reading; it maps to 100%.
const fullScale = types.MaxADC - 1

// Hundredths returns m/4095*100 in hundredths of a percent, rounded half up.
func Hundredths(m uint16) uint32 {
	return mathx.RoundDiv(uint32(mathx.Min(m, fullScale))*10000, fullScale)
}

// Percent formats m as a duty percentage with two decimals, e.g. "50.01".
func Percent(m uint16) string {
	h := Hundredths(m)
	return fmtx.Sprintf("%d.%02d", h/100, h%100)
}

func pressed(b bool) string {
	if b {
		return "Pressed"
	}
	return "Released"
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Lines renders the three status lines, without newlines.
func Lines(st types.Status) [3]string {
	return [3]string{
		fmtx.Sprintf("VRX: %d, VRY: %d, SW: %d", st.VRX, st.VRY, bit(st.SW)),
		fmtx.Sprintf("Button A: %s, Button B: %s", pressed(st.ButtonA), pressed(st.ButtonB)),
		fmtx.Sprintf("Duty Cycle LED Azul: %s%%, Duty Cycle LED Verde: %s%%", Percent(st.VRX), Percent(st.VRY)),
	}
}

// Writer is a Logger that writes each status as three lines to every sink.
// A sink that errors is skipped for that report only.
type Writer struct {
	mu    sync.Mutex
	sinks []io.Writer
	buf   []byte
}

func NewWriter(ws ...io.Writer) *Writer {
	w := &Writer{}
	for _, s := range ws {
		w.Add(s)
	}
	return w
}

// Add appends a sink; nil is ignored.
func (w *Writer) Add(s io.Writer) {
	if s == nil {
		return
	}
	w.mu.Lock()
	w.sinks = append(w.sinks, s)
	w.mu.Unlock()
}

func (w *Writer) Report(st types.Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = w.buf[:0]
	for _, l := range Lines(st) {
		w.buf = append(w.buf, l...)
		w.buf = append(w.buf, '\n')
	}
	for _, s := range w.sinks {
		_, _ = s.Write(w.buf)
	}
}
