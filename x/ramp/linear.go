package ramp

import (
	"time"

	"joypwm-go/x/mathx"
)

// Step sets the new logical level in [0..top].
type Step func(level uint16)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear drives a level from cur to to in steps increments over durationMs.
// It is synchronous; tick owns timing and cancellation.
// steps==0 or durationMs==0 snaps to 'to'.
func Linear(cur, to, top uint16, durationMs uint32, steps uint16, tick Tick, set Step) {
	to = mathx.Min(to, top)
	if steps == 0 || durationMs == 0 {
		set(to)
		return
	}
	delta := int32(to) - int32(cur)
	n := int32(steps)
	acc := int32(0)
	level := int32(cur)
	stepDur := time.Duration(mathx.Max(durationMs/uint32(steps), 1)) * time.Millisecond

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += delta
		inc := acc / n
		if inc == 0 {
			continue
		}
		acc -= inc * n
		level = mathx.Clamp(level+inc, 0, int32(top))
		set(uint16(level))
	}
	set(to)
}

// Sweep runs cur -> top -> 0, the bring-up pattern for a dimmable LED.
// It returns false if tick cancelled part way.
func Sweep(top uint16, halfMs uint32, steps uint16, tick Tick, set Step) bool {
	done := true
	guard := func(d time.Duration) bool {
		if !tick(d) {
			done = false
			return false
		}
		return true
	}
	Linear(0, top, top, halfMs, steps, guard, set)
	if !done {
		return false
	}
	Linear(top, 0, top, halfMs, steps, guard, set)
	return done
}
