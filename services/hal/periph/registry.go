//go:build linux

// Package periph provides the resource registry for Linux single-board
// computers (Raspberry Pi) via periph.io. Pins use BCM numbering.
package periph

import (
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/x/mathx"
	"joypwm-go/x/strconvx"
)

var _ core.ResourceRegistry = (*Registry)(nil)

type Options struct {
	// ADCDevice is the IIO sysfs directory holding in_voltageN_raw files.
	ADCDevice string
	// ADCBits is the converter resolution; samples are rescaled to 12 bits.
	ADCBits uint8
}

type Registry struct {
	mu   sync.Mutex
	opts Options
	pins map[int]*pinState
	adc  map[int]string // input -> owner
}

type pinState struct {
	owner string
	fn    core.PinFunc
	p     gpio.PinIO
	pwm   *periphPWM
}

// New initialises the periph host drivers.
func New(opts Options) (*Registry, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	if opts.ADCBits == 0 {
		opts.ADCBits = 12
	}
	return &Registry{opts: opts, pins: make(map[int]*pinState), adc: make(map[int]string)}, nil
}

// ---- GPIO ----

type periphGPIO struct {
	p gpio.PinIO
	n int
}

func (g *periphGPIO) Number() int { return g.n }

func (g *periphGPIO) ConfigureInput(pull core.Pull) error {
	pp := gpio.Float
	switch pull {
	case core.PullUp:
		pp = gpio.PullUp
	case core.PullDown:
		pp = gpio.PullDown
	}
	return g.p.In(pp, gpio.NoEdge)
}

func (g *periphGPIO) ConfigureOutput(initial bool) error { return g.p.Out(gpio.Level(initial)) }
func (g *periphGPIO) Set(b bool)                         { _ = g.p.Out(gpio.Level(b)) }
func (g *periphGPIO) Get() bool                          { return g.p.Read() == gpio.High }
func (g *periphGPIO) Toggle()                            { g.Set(!g.Get()) }

// ---- PWM ----

type periphPWM struct {
	mu      sync.Mutex
	p       gpio.PinIO
	n       int
	freqHz  uint64
	top     uint16
	level   uint16
	enabled bool
}

func (w *periphPWM) Configure(freqHz uint64, top uint16) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.freqHz = mathx.Max(freqHz, 1)
	w.top = mathx.Max(top, 1)
	w.level, w.enabled = 0, false
	return w.p.Out(gpio.Low)
}

// caller holds lock
func (w *periphPWM) drive() {
	if !w.enabled || w.level == 0 {
		_ = w.p.Out(gpio.Low)
		return
	}
	_ = w.p.PWM(dutyFor(w.level, w.top), hz(w.freqHz))
}

func (w *periphPWM) Set(level uint16) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.level = level
	w.drive()
}

func (w *periphPWM) Enable(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enabled = on
	w.drive()
}

// Info reports the BCM pin; the slice/channel model does not apply here.
func (w *periphPWM) Info() (int, rune, int) { return 0, 'A', w.n }

type pinHandle struct {
	n  int
	fn core.PinFunc
	g  *periphGPIO
	w  *periphPWM
}

func (h *pinHandle) Pin() int { return h.n }

func (h *pinHandle) AsGPIO() core.GPIOHandle {
	if h.fn != core.FuncGPIOIn && h.fn != core.FuncGPIOOut {
		panic("pin not claimed for GPIO")
	}
	return h.g
}

func (h *pinHandle) AsPWM() core.PWMHandle {
	if h.fn != core.FuncPWM {
		panic("pin not claimed for PWM")
	}
	return h.w
}

// ---- Registry ----

func (r *Registry) ClaimPin(devID string, n int, fn core.PinFunc) (core.PinHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn != core.FuncGPIOIn && fn != core.FuncGPIOOut && fn != core.FuncPWM {
		return nil, errcode.Unsupported
	}
	if st, inUse := r.pins[n]; inUse && st.owner != "" {
		return nil, errcode.PinInUse
	}
	p := gpioreg.ByName("GPIO" + strconvx.Itoa(n))
	if p == nil {
		return nil, errcode.UnknownPin
	}
	st := &pinState{owner: devID, fn: fn, p: p}
	h := &pinHandle{n: n, fn: fn}
	if fn == core.FuncPWM {
		st.pwm = &periphPWM{p: p, n: n}
		h.w = st.pwm
	} else {
		h.g = &periphGPIO{p: p, n: n}
	}
	r.pins[n] = st
	return h, nil
}

func (r *Registry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.pins[n]
	if !ok || st.owner != devID {
		return
	}
	if st.pwm != nil {
		st.pwm.Enable(false)
	}
	_ = st.p.Halt()
	_ = st.p.In(gpio.Float, gpio.NoEdge)
	delete(r.pins, n)
}

func (r *Registry) ClaimADC(devID string, ch int) (core.ADCHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.ADCDevice == "" {
		return nil, errors.Wrap(errcode.Unsupported, "no adc device configured")
	}
	if owner, taken := r.adc[ch]; taken && owner != "" {
		return nil, errcode.ADCInUse
	}
	a, err := openIIO(r.opts.ADCDevice, ch, r.opts.ADCBits)
	if err != nil {
		return nil, err
	}
	r.adc[ch] = devID
	return a, nil
}

func (r *Registry) ReleaseADC(devID string, ch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.adc[ch] == devID {
		delete(r.adc, ch)
	}
}

// The SSD1306 and UART mirror are MCU features; boards for this provider
// leave them disabled.

func (r *Registry) ClaimI2C(devID string, id core.ResourceID) (drivers.I2C, error) {
	return nil, errcode.Unsupported
}
func (r *Registry) ReleaseI2C(devID string, id core.ResourceID) {}

func (r *Registry) ClaimDisplay(devID string, spec core.DisplaySpec) (core.Framebuffer, error) {
	return nil, errcode.Unsupported
}
func (r *Registry) ReleaseDisplay(devID string, id core.ResourceID) {}

func (r *Registry) ClaimSerial(devID string, id core.ResourceID) (core.SerialPort, error) {
	return nil, errcode.Unsupported
}
func (r *Registry) ReleaseSerial(devID string, id core.ResourceID) {}

// Close halts every pin still claimed.
func (r *Registry) Close() {
	r.mu.Lock()
	owned := make(map[int]string, len(r.pins))
	for n, st := range r.pins {
		owned[n] = st.owner
	}
	r.mu.Unlock()
	for n, owner := range owned {
		r.ReleasePin(owner, n)
	}
}
