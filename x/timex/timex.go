package timex

import (
	"sync/atomic"
	"time"
)

// Clock yields milliseconds since an arbitrary origin. Callers compare
// readings with unsigned subtraction so wrap after ~49 days is harmless.
type Clock interface {
	NowMs() uint32
}

// Boot is the monotonic clock started at process (or MCU) start.
type Boot struct{}

var bootAt = time.Now()

func (Boot) NowMs() uint32 { return uint32(time.Since(bootAt) / time.Millisecond) }

// Manual is a clock advanced by hand, for tests and simulations.
type Manual struct{ ms atomic.Uint32 }

func (m *Manual) NowMs() uint32     { return m.ms.Load() }
func (m *Manual) Set(ms uint32)     { m.ms.Store(ms) }
func (m *Manual) Advance(ms uint32) { m.ms.Add(ms) }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint64) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return 1_000_000_000 / freqHz
}
