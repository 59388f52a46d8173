//go:build !(rp2040 || rp2350)

package gpio_button

import (
	"context"
	"testing"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/services/hal/internal/provider"
	"joypwm-go/types"
	"joypwm-go/x/timex"
)

func TestDebounceCommitsOncePerWindow(t *testing.T) {
	var st State
	// Raw toggles every 10 ms; window is 50 ms.
	commits := 0
	last := st.Pressed
	for now := uint32(0); now <= 1000; now += 10 {
		raw := (now/10)%2 == 1
		got := Debounce(raw, now, &st, 50)
		if got != last {
			commits++
			last = got
		}
	}
	// At most one commit per 50 ms window.
	if commits > 1000/50+1 {
		t.Fatalf("commits=%d exceeds one per window", commits)
	}
	if commits == 0 {
		t.Fatal("expected at least one commit")
	}
}

func TestDebounceSpacing(t *testing.T) {
	var st State
	var commitTimes []uint32
	prev := st.Pressed
	for now := uint32(0); now <= 500; now += 5 {
		raw := (now/5)%2 == 0
		if Debounce(raw, now, &st, 50) != prev {
			prev = st.Pressed
			commitTimes = append(commitTimes, now)
		}
	}
	for i := 1; i < len(commitTimes); i++ {
		if commitTimes[i]-commitTimes[i-1] < 50 {
			t.Fatalf("commits %d and %d only %d ms apart", i-1, i, commitTimes[i]-commitTimes[i-1])
		}
	}
}

func TestDebounceHeldLevelCommits(t *testing.T) {
	st := State{Pressed: false, LastMs: 1000}
	// A press that starts inside the window is committed once the window passes.
	if Debounce(true, 1020, &st, 50) {
		t.Fatal("committed inside window")
	}
	if !Debounce(true, 1050, &st, 50) {
		t.Fatal("not committed at window boundary")
	}
	if st.LastMs != 1050 {
		t.Fatalf("LastMs=%d want 1050", st.LastMs)
	}
	// Same level again is not a transition.
	Debounce(true, 2000, &st, 50)
	if st.LastMs != 1050 {
		t.Fatalf("LastMs moved on a non-transition: %d", st.LastMs)
	}
}

func TestDebounceClockWrap(t *testing.T) {
	st := State{Pressed: false, LastMs: ^uint32(0) - 10}
	if !Debounce(true, 40, &st, 50) {
		t.Fatal("51 ms across wrap should commit")
	}
}

func TestPollActiveLow(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	clk := &timex.Manual{}
	dev, err := core.Build(context.Background(), types.HALDevice{
		ID: "button_a", Type: "gpio_button",
		Params: Params{Pin: 5, Invert: true, DebounceMs: 50},
	}, core.Resources{Reg: reg, Clock: clk})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	btn := dev.(*Device)
	pin := reg.Pin(5)
	if pin.Pull() != core.PullUp {
		t.Fatalf("pull=%v want up", pin.Pull())
	}

	// Idle (pulled high) reads released.
	clk.Set(100)
	if btn.Poll() || btn.Raw() {
		t.Fatal("idle button reads pressed")
	}

	pin.Set(false) // press
	if !btn.Raw() {
		t.Fatal("raw should follow the pin")
	}
	if !btn.Poll() {
		t.Fatal("press after quiet period should commit")
	}

	// Bounce back high 10 ms later is ignored.
	clk.Advance(10)
	pin.Set(true)
	if !btn.Poll() {
		t.Fatal("bounce committed inside window")
	}
	clk.Advance(40)
	if btn.Poll() {
		t.Fatal("release held for a full window should commit")
	}
	if btn.Value().Pressed {
		t.Fatal("Value disagrees with Poll")
	}
}

func TestIndependentButtons(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	clk := &timex.Manual{}
	res := core.Resources{Reg: reg, Clock: clk}
	a, _ := core.Build(context.Background(), types.HALDevice{ID: "a", Type: "gpio_button", Params: Params{Pin: 5, Invert: true, DebounceMs: 50}}, res)
	b, _ := core.Build(context.Background(), types.HALDevice{ID: "b", Type: "gpio_button", Params: Params{Pin: 6, Invert: true, DebounceMs: 50}}, res)
	ba, bb := a.(*Device), b.(*Device)

	clk.Set(100)
	reg.Pin(5).Set(false)
	if !ba.Poll() {
		t.Fatal("A not pressed")
	}
	// B pressed 10 ms after A: its own window, so it commits immediately.
	clk.Advance(10)
	reg.Pin(6).Set(false)
	if !bb.Poll() {
		t.Fatal("B blocked by A's debounce window")
	}
}

func TestBuildErrors(t *testing.T) {
	reg := provider.NewHostRegistry(types.ResourcePlan{})
	res := core.Resources{Reg: reg}
	_, err := core.Build(context.Background(), types.HALDevice{ID: "x", Type: "gpio_button", Params: Params{Pin: 5, Pull: "sideways"}}, res)
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad pull err=%v", err)
	}
	_, _ = core.Build(context.Background(), types.HALDevice{ID: "a", Type: "gpio_button", Params: Params{Pin: 5}}, res)
	_, err = core.Build(context.Background(), types.HALDevice{ID: "b", Type: "gpio_button", Params: Params{Pin: 5}}, res)
	if errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("double claim err=%v", err)
	}
}
