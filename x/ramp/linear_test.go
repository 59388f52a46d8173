package ramp

import (
	"testing"
	"time"
)

func TestLinearMonotonicAndEndsAtTarget(t *testing.T) {
	var got []uint16
	ticks := 0
	Linear(0, 4096, 4096, 1000, 10,
		func(time.Duration) bool { ticks++; return true },
		func(l uint16) { got = append(got, l) })

	if ticks != 9 {
		t.Fatalf("ticks=%d want 9", ticks)
	}
	if len(got) == 0 || got[len(got)-1] != 4096 {
		t.Fatalf("final level = %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("not monotonic at %d: %v", i, got)
		}
	}
}

func TestLinearSnapsWhenNoSteps(t *testing.T) {
	var got []uint16
	Linear(10, 5000, 4096, 0, 10,
		func(time.Duration) bool { t.Fatal("tick called"); return false },
		func(l uint16) { got = append(got, l) })
	if len(got) != 1 || got[0] != 4096 {
		t.Fatalf("got %v want [4096]", got)
	}
}

func TestLinearCancel(t *testing.T) {
	calls := 0
	Linear(0, 100, 100, 100, 10,
		func(time.Duration) bool { return false },
		func(uint16) { calls++ })
	if calls != 0 {
		t.Fatalf("set called %d times after cancel", calls)
	}
}

func TestSweep(t *testing.T) {
	var last uint16
	peak := uint16(0)
	ok := Sweep(4096, 100, 4,
		func(time.Duration) bool { return true },
		func(l uint16) {
			last = l
			if l > peak {
				peak = l
			}
		})
	if !ok || peak != 4096 || last != 0 {
		t.Fatalf("ok=%v peak=%d last=%d", ok, peak, last)
	}

	n := 0
	ok = Sweep(4096, 100, 4, func(time.Duration) bool { n++; return n < 2 }, func(uint16) {})
	if ok {
		t.Fatal("expected cancelled sweep")
	}
}
