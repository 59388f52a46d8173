package provider

import (
	"sync"

	"joypwm-go/errcode"
)

// Both channels of a slice share one counter, so they must agree on frequency.

type sliceCfg struct {
	freqHz uint64
	users  int
}

type sliceTable struct {
	mu    sync.Mutex
	slice map[int]*sliceCfg
}

func newSliceTable() *sliceTable { return &sliceTable{slice: make(map[int]*sliceCfg)} }

// acquire accounts a channel configuring its slice at freqHz.
// registered says whether this channel is already counted as a user.
// program reports whether the caller must (re)program the slice period.
func (t *sliceTable) acquire(slice int, freqHz uint64, registered bool) (program bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sc := t.slice[slice]
	if sc == nil {
		sc = &sliceCfg{}
		t.slice[slice] = sc
	}
	switch {
	case sc.users == 0:
		sc.freqHz = freqHz
		sc.users = 1
		return true, nil
	case !registered:
		if sc.freqHz != freqHz {
			return false, errcode.Conflict
		}
		sc.users++
		return false, nil
	case sc.freqHz == freqHz:
		return false, nil
	case sc.users == 1:
		// Sole user may retune its slice.
		sc.freqHz = freqHz
		return true, nil
	default:
		return false, errcode.Conflict
	}
}

func (t *sliceTable) release(slice int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sc := t.slice[slice]; sc != nil && sc.users > 0 {
		sc.users--
		if sc.users == 0 {
			sc.freqHz = 0
		}
	}
}

func (t *sliceTable) users(slice int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sc := t.slice[slice]; sc != nil {
		return sc.users
	}
	return 0
}
