//go:build !(rp2040 || rp2350)

package provider

import (
	"bytes"
	"sync"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
	"joypwm-go/x/mathx"

	"tinygo.org/x/drivers"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin is an in-memory GPIO. Inputs with a pull-up idle high.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    core.Pull
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) ConfigureInput(pull core.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.level = pull == core.PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(b bool) {
	p.mu.Lock()
	p.level = b
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

// IsOutput and Pull expose the configured mode for assertions.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

func (p *FakePin) Pull() core.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// ----------------------------- PWM (host) ------------------------------------

// FakePWM records the logical level and what would reach the pin.
type FakePWM struct {
	mu         sync.Mutex
	pin        int
	slice      int
	chIdx      uint8
	slices     *sliceTable
	registered bool

	configured bool
	freqHz     uint64
	top        uint16
	level      uint16
	enabled    bool
	out        uint16 // level currently driven
	writes     int
}

func (p *FakePWM) Configure(freqHz uint64, top uint16) error {
	top = mathx.Max(top, 1)
	freqHz = mathx.Max(freqHz, 1)
	p.mu.Lock()
	registered := p.registered
	p.mu.Unlock()
	if _, err := p.slices.acquire(p.slice, freqHz, registered); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = true
	p.configured = true
	p.freqHz = freqHz
	p.top = top
	p.level, p.enabled = 0, false
	p.drive(0)
	return nil
}

// caller holds lock
func (p *FakePWM) drive(level uint16) {
	p.out = mathx.Min(level, p.top)
	p.writes++
}

func (p *FakePWM) Set(level uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if p.enabled {
		p.drive(level)
	}
}

func (p *FakePWM) Enable(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
	if on {
		p.drive(p.level)
	} else {
		p.drive(0)
	}
}

func (p *FakePWM) Info() (int, rune, int) { return p.slice, chRune(p.chIdx), p.pin }

func (p *FakePWM) reset() {
	p.mu.Lock()
	p.level, p.enabled = 0, false
	p.drive(0)
	registered := p.registered
	p.registered = false
	p.mu.Unlock()
	if registered {
		p.slices.release(p.slice)
	}
}

// State returns (logical level, enabled, driven output).
func (p *FakePWM) State() (level uint16, enabled bool, out uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, p.enabled, p.out
}

func (p *FakePWM) Config() (freqHz uint64, top uint16, configured bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freqHz, p.top, p.configured
}

// ----------------------------- ADC (host) ------------------------------------

// FakeADC returns whatever raw value the test set, including values a real
// 12-bit converter could not produce.
type FakeADC struct {
	mu    sync.Mutex
	ch    int
	value uint16
	reads int
}

func (a *FakeADC) Channel() int { return a.ch }

func (a *FakeADC) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads++
	return a.value
}

func (a *FakeADC) SetValue(v uint16) {
	a.mu.Lock()
	a.value = v
	a.mu.Unlock()
}

func (a *FakeADC) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}

// ----------------------------- I²C / display (host) --------------------------

// HostI2C implements tinygo drivers.I2C for host-side tests.
type HostI2C struct {
	mu     sync.Mutex
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return nil
}

// FakeFramebuffer stands in for an SSD1306.
type FakeFramebuffer struct {
	mu      sync.Mutex
	spec    core.DisplaySpec
	buf     []byte
	flushed [][]byte
}

func (f *FakeFramebuffer) Size() (int16, int16) { return f.spec.Width, f.spec.Height }
func (f *FakeFramebuffer) GetBuffer() []byte    { return f.buf }

func (f *FakeFramebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushed = append(f.flushed, append([]byte(nil), f.buf...))
	return nil
}

// Flushes returns a copy of every frame pushed so far.
func (f *FakeFramebuffer) Flushes() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.flushed...)
}

// ----------------------------- Serial (host) ---------------------------------

type FakeSerial struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *FakeSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *FakeSerial) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// ----------------------------- Registry (host) -------------------------------

// HostRegistry is the host build of the resource registry. It applies the
// same ownership rules as the RP2040 provider over in-memory fakes.
type HostRegistry struct {
	mu sync.Mutex

	pins   pinTable
	gpio   map[int]*FakePin
	pwm    map[int]*FakePWM
	adc    map[int]*FakeADC
	slices *sliceTable

	i2c      map[core.ResourceID]*HostI2C
	display  map[core.ResourceID]*FakeFramebuffer
	displays busTable

	uart      map[core.ResourceID]*FakeSerial
	uartOwner busTable

	closed bool
}

var _ core.ResourceRegistry = (*HostRegistry)(nil)

func NewResourceRegistry(plan types.ResourcePlan) core.ResourceRegistry {
	return NewHostRegistry(plan)
}

func NewHostRegistry(plan types.ResourcePlan) *HostRegistry {
	r := &HostRegistry{
		pins:      make(pinTable),
		gpio:      make(map[int]*FakePin),
		pwm:       make(map[int]*FakePWM),
		adc:       make(map[int]*FakeADC),
		slices:    newSliceTable(),
		i2c:       make(map[core.ResourceID]*HostI2C),
		display:   make(map[core.ResourceID]*FakeFramebuffer),
		displays:  make(busTable),
		uart:      make(map[core.ResourceID]*FakeSerial),
		uartOwner: make(busTable),
	}
	for _, p := range plan.I2C {
		_ = r.pins.claim(p.ID, p.SDA, core.FuncBus)
		_ = r.pins.claim(p.ID, p.SCL, core.FuncBus)
		r.i2c[core.ResourceID(p.ID)] = &HostI2C{}
	}
	for _, u := range plan.UART {
		_ = r.pins.claim(u.ID, u.TX, core.FuncBus)
		_ = r.pins.claim(u.ID, u.RX, core.FuncBus)
		r.uart[core.ResourceID(u.ID)] = &FakeSerial{}
	}
	for ch := 0; ch < ADCInputs; ch++ {
		r.adc[ch] = &FakeADC{ch: ch}
	}
	return r
}

func (r *HostRegistry) fakePin(n int) *FakePin {
	if p, ok := r.gpio[n]; ok {
		return p
	}
	p := &FakePin{number: n}
	r.gpio[n] = p
	return p
}

type hostPinHandle struct {
	n    int
	fn   core.PinFunc
	gpio *FakePin
	pwm  *FakePWM
}

func (h *hostPinHandle) Pin() int { return h.n }

func (h *hostPinHandle) AsGPIO() core.GPIOHandle {
	if h.fn != core.FuncGPIOIn && h.fn != core.FuncGPIOOut {
		panic("pin not claimed for GPIO")
	}
	return h.gpio
}

func (h *hostPinHandle) AsPWM() core.PWMHandle {
	if h.fn != core.FuncPWM {
		panic("pin not claimed for PWM")
	}
	return h.pwm
}

func (r *HostRegistry) ClaimPin(devID string, n int, fn core.PinFunc) (core.PinHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn != core.FuncGPIOIn && fn != core.FuncGPIOOut && fn != core.FuncPWM {
		return nil, errcode.Unsupported
	}
	if err := r.pins.claim(devID, n, fn); err != nil {
		return nil, err
	}
	ph := &hostPinHandle{n: n, fn: fn}
	if fn == core.FuncPWM {
		slice, chIdx := pwmSliceOf(n)
		ph.pwm = &FakePWM{pin: n, slice: slice, chIdx: chIdx, slices: r.slices}
		r.pwm[n] = ph.pwm
	} else {
		ph.gpio = r.fakePin(n)
	}
	return ph, nil
}

func (r *HostRegistry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn, ok := r.pins.release(devID, n)
	if !ok {
		return
	}
	if fn == core.FuncPWM {
		if p := r.pwm[n]; p != nil {
			p.reset()
		}
	}
	_ = r.fakePin(n).ConfigureInput(core.PullNone)
}

func (r *HostRegistry) ClaimADC(devID string, ch int) (core.ADCHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.adc[ch]
	if !ok {
		return nil, errcode.UnknownPin
	}
	if err := r.pins.claim(devID, ADCBasePin+ch, core.FuncADC); err != nil {
		if err == errcode.PinInUse {
			return nil, errcode.ADCInUse
		}
		return nil, err
	}
	return a, nil
}

func (r *HostRegistry) ReleaseADC(devID string, ch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins.release(devID, ADCBasePin+ch)
}

func (r *HostRegistry) ClaimI2C(devID string, id core.ResourceID) (drivers.I2C, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.i2c[id]
	if !ok {
		return nil, errcode.UnknownBus
	}
	return b, nil
}

func (r *HostRegistry) ReleaseI2C(devID string, id core.ResourceID) {}

func (r *HostRegistry) ClaimDisplay(devID string, spec core.DisplaySpec) (core.Framebuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.i2c[spec.Bus]; !ok {
		return nil, errcode.UnknownBus
	}
	if spec.Width <= 0 || spec.Height <= 0 || spec.Height%8 != 0 {
		return nil, errcode.InvalidParams
	}
	if err := r.displays.claim(devID, spec.Bus); err != nil {
		return nil, err
	}
	fb := r.display[spec.Bus]
	if fb == nil {
		fb = &FakeFramebuffer{spec: spec, buf: make([]byte, int(spec.Width)*int(spec.Height)/8)}
		r.display[spec.Bus] = fb
	}
	return fb, nil
}

func (r *HostRegistry) ReleaseDisplay(devID string, id core.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays.release(devID, id)
}

func (r *HostRegistry) ClaimSerial(devID string, id core.ResourceID) (core.SerialPort, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.uart[id]
	if !ok {
		return nil, errcode.UnknownBus
	}
	if err := r.uartOwner.claim(devID, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *HostRegistry) ReleaseSerial(devID string, id core.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uartOwner.release(devID, id)
}

func (r *HostRegistry) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// ---- test accessors ----

// Pin returns the fake behind GPIO n, creating it if needed.
func (r *HostRegistry) Pin(n int) *FakePin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fakePin(n)
}

func (r *HostRegistry) PWM(n int) *FakePWM {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pwm[n]
}

func (r *HostRegistry) ADC(ch int) *FakeADC {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adc[ch]
}

func (r *HostRegistry) Display(id core.ResourceID) *FakeFramebuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.display[id]
}

func (r *HostRegistry) Serial(id core.ResourceID) *FakeSerial {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uart[id]
}

// Owner reports which device holds pin n ("" when free).
func (r *HostRegistry) Owner(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pins[n].devID
}

func (r *HostRegistry) SliceUsers(slice int) int { return r.slices.users(slice) }

func (r *HostRegistry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
