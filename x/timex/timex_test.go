package timex

import "testing"

func TestManualClock(t *testing.T) {
	var c Manual
	if c.NowMs() != 0 {
		t.Fatalf("start=%d", c.NowMs())
	}
	c.Advance(100)
	c.Advance(50)
	if c.NowMs() != 150 {
		t.Fatalf("now=%d want 150", c.NowMs())
	}
	c.Set(^uint32(0))
	c.Advance(2)
	if got := c.NowMs(); got != 1 {
		t.Fatalf("wrap: now=%d want 1", got)
	}
}

func TestBootIsMonotonic(t *testing.T) {
	var c Clock = Boot{}
	a := c.NowMs()
	b := c.NowMs()
	if b-a > 1000 {
		t.Fatalf("unexpected jump %d -> %d", a, b)
	}
}

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(1000); got != 1_000_000 {
		t.Fatalf("1 kHz period = %d", got)
	}
	if got := PeriodFromHz(0); got != 1_000_000_000 {
		t.Fatalf("0 Hz period = %d", got)
	}
}
