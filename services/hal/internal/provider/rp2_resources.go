//go:build rp2040 || rp2350

package provider

import (
	"machine"
	"sync"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
	"joypwm-go/x/mathx"
	"joypwm-go/x/timex"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

var _ core.ResourceRegistry = (*rp2Registry)(nil)

// -----------------------------------------------------------------------------
// GPIO handle
// -----------------------------------------------------------------------------

type rp2GPIO struct {
	p machine.Pin
	n int
}

func (r *rp2GPIO) Number() int { return r.n }

func (r *rp2GPIO) ConfigureInput(pull core.Pull) error {
	var mode machine.PinMode
	switch pull {
	case core.PullUp:
		mode = machine.PinInputPullup
	case core.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2GPIO) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2GPIO) Set(b bool) { r.p.Set(b) }
func (r *rp2GPIO) Get() bool  { return r.p.Get() }
func (r *rp2GPIO) Toggle()    { r.p.Set(!r.p.Get()) }

// -----------------------------------------------------------------------------
// PWM
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice int) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2PWM struct {
	mu sync.Mutex

	pin    int
	ctrl   pwmCtrl
	chIdx  uint8
	slice  int
	slices *sliceTable

	enabled    bool
	registered bool

	reqTop uint16 // logical resolution (0..reqTop)
	hwTop  uint32 // controller.Top() after Configure
	level  uint16 // current logical level
}

// caller holds lock
func (p *rp2PWM) drive(logical uint16) {
	if p.hwTop == 0 || p.reqTop == 0 {
		p.ctrl.Set(p.chIdx, 0)
		return
	}
	// RP2040 slice counters are 16 bits wide.
	p.ctrl.Set(p.chIdx, uint32(mathx.ScaleU16(logical, p.reqTop, uint16(p.hwTop))))
}

func (p *rp2PWM) Configure(freqHz uint64, top uint16) error {
	top = mathx.Max(top, 1)
	freqHz = mathx.Max(freqHz, 1)

	p.mu.Lock()
	registered := p.registered
	p.mu.Unlock()

	program, err := p.slices.acquire(p.slice, freqHz, registered)
	if err != nil {
		return err
	}
	if program {
		if err := p.ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(freqHz)}); err != nil {
			if !registered {
				p.slices.release(p.slice)
			}
			return err
		}
	}
	machine.Pin(p.pin).Configure(machine.PinConfig{Mode: machine.PinPWM})

	p.mu.Lock()
	p.registered = true
	p.reqTop = top
	p.hwTop = p.ctrl.Top()
	p.level = 0
	p.enabled = false
	p.drive(0)
	p.mu.Unlock()
	return nil
}

func (p *rp2PWM) Set(level uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if p.enabled {
		p.drive(level)
	}
}

func (p *rp2PWM) Enable(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
	if on {
		p.drive(p.level)
	} else {
		p.drive(0)
	}
}

func (p *rp2PWM) Info() (int, rune, int) { return p.slice, chRune(p.chIdx), p.pin }

// reset drives 0 and gives the slice back. Caller holds the registry lock.
func (p *rp2PWM) reset() {
	p.mu.Lock()
	p.enabled = false
	p.level = 0
	p.drive(0)
	registered := p.registered
	p.registered = false
	p.mu.Unlock()
	if registered {
		p.slices.release(p.slice)
	}
}

// -----------------------------------------------------------------------------
// PinHandle
// -----------------------------------------------------------------------------

type rp2PinHandle struct {
	n    int
	fn   core.PinFunc
	gpio *rp2GPIO
	pwm  *rp2PWM
}

func (h *rp2PinHandle) Pin() int { return h.n }

func (h *rp2PinHandle) AsGPIO() core.GPIOHandle {
	if h.fn != core.FuncGPIOIn && h.fn != core.FuncGPIOOut {
		panic("pin not claimed for GPIO")
	}
	return h.gpio
}

func (h *rp2PinHandle) AsPWM() core.PWMHandle {
	if h.fn != core.FuncPWM {
		panic("pin not claimed for PWM")
	}
	return h.pwm
}

// -----------------------------------------------------------------------------
// ADC
// -----------------------------------------------------------------------------

type rp2ADC struct {
	ch  int
	adc machine.ADC
	mu  *sync.Mutex // shared converter
}

func (a *rp2ADC) Channel() int { return a.ch }

// Get triggers a conversion on the selected input; the result is
// left-aligned to 16 bits.
func (a *rp2ADC) Read() uint16 {
	a.mu.Lock()
	raw := a.adc.Get()
	a.mu.Unlock()
	return mathx.MapBits(uint32(raw), 16, 12)
}

// -----------------------------------------------------------------------------
// I²C owner (one per bus)
// -----------------------------------------------------------------------------

// i2cOwner serialises transactions on one bus. The control loop is the only
// caller after boot, so transfers run inline on the caller's goroutine.
type i2cOwner struct {
	id core.ResourceID
	mu sync.Mutex
	hw *machine.I2C
}

func newI2COwner(id core.ResourceID, hw *machine.I2C) *i2cOwner {
	return &i2cOwner{id: id, hw: hw}
}

func (o *i2cOwner) tx(addr uint16, w, r []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hw.Tx(addr, w, r)
}

// driversI2C adapts the owner to tinygo.org/x/drivers.I2C.
type driversI2C struct {
	o *i2cOwner
}

var _ drivers.I2C = (*driversI2C)(nil)

func (d *driversI2C) Tx(addr uint16, w, r []byte) error { return d.o.tx(addr, w, r) }

// -----------------------------------------------------------------------------
// Serial
// -----------------------------------------------------------------------------

type rp2SerialPort struct{ u *uartx.UART }

func (p *rp2SerialPort) Write(b []byte) (int, error) { return p.u.Write(b) }

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

type rp2Registry struct {
	mu sync.Mutex

	pins   pinTable
	gpio   map[int]*rp2GPIO
	pwm    map[int]*rp2PWM
	slices *sliceTable

	adcOnce sync.Once
	adcMu   sync.Mutex

	i2c      map[core.ResourceID]*i2cOwner
	displays busTable

	uart      map[core.ResourceID]*rp2SerialPort
	uartOwner busTable
}

// NewResourceRegistry configures the buses in plan and returns the registry.
// Bus pins are held by the bus for the registry's lifetime.
func NewResourceRegistry(plan types.ResourcePlan) core.ResourceRegistry {
	r := &rp2Registry{
		pins:      make(pinTable),
		gpio:      make(map[int]*rp2GPIO),
		pwm:       make(map[int]*rp2PWM),
		slices:    newSliceTable(),
		i2c:       make(map[core.ResourceID]*i2cOwner),
		displays:  make(busTable),
		uart:      make(map[core.ResourceID]*rp2SerialPort),
		uartOwner: make(busTable),
	}

	for _, p := range plan.I2C {
		var hw *machine.I2C
		switch p.ID {
		case "i2c0":
			hw = machine.I2C0
		case "i2c1":
			hw = machine.I2C1
		default:
			println("[provider] unknown i2c bus", p.ID)
			continue
		}
		_ = r.pins.claim(p.ID, p.SDA, core.FuncBus)
		_ = r.pins.claim(p.ID, p.SCL, core.FuncBus)
		sda := machine.Pin(p.SDA)
		scl := machine.Pin(p.SCL)
		sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
		scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
		if err := hw.Configure(machine.I2CConfig{SCL: scl, SDA: sda, Frequency: p.Hz}); err != nil {
			println("[provider] i2c configure", p.ID, err.Error())
			continue
		}
		r.i2c[core.ResourceID(p.ID)] = newI2COwner(core.ResourceID(p.ID), hw)
	}

	for _, u := range plan.UART {
		var hw *uartx.UART
		switch u.ID {
		case "uart0":
			hw = uartx.UART0
		case "uart1":
			hw = uartx.UART1
		default:
			println("[provider] unknown uart", u.ID)
			continue
		}
		_ = r.pins.claim(u.ID, u.TX, core.FuncBus)
		_ = r.pins.claim(u.ID, u.RX, core.FuncBus)
		_ = hw.Configure(uartx.UARTConfig{
			BaudRate: u.Baud,
			TX:       machine.Pin(u.TX),
			RX:       machine.Pin(u.RX),
		})
		r.uart[core.ResourceID(u.ID)] = &rp2SerialPort{u: hw}
	}
	return r
}

func (r *rp2Registry) lookupGPIO(n int) *rp2GPIO {
	if g, ok := r.gpio[n]; ok {
		return g
	}
	g := &rp2GPIO{p: machine.Pin(n), n: n}
	r.gpio[n] = g
	return g
}

func (r *rp2Registry) ClaimPin(devID string, n int, fn core.PinFunc) (core.PinHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ph := &rp2PinHandle{n: n, fn: fn}
	switch fn {
	case core.FuncGPIOIn, core.FuncGPIOOut:
		if err := r.pins.claim(devID, n, fn); err != nil {
			return nil, err
		}
		ph.gpio = r.lookupGPIO(n)
	case core.FuncPWM:
		if !inBoardRange(n) {
			return nil, errcode.UnknownPin
		}
		if _, err := machine.PWMPeripheral(machine.Pin(n)); err != nil {
			return nil, errcode.Unsupported
		}
		if err := r.pins.claim(devID, n, fn); err != nil {
			return nil, err
		}
		slice, chIdx := pwmSliceOf(n)
		ph.pwm = &rp2PWM{
			pin:    n,
			ctrl:   pwmGroupBySlice(slice),
			chIdx:  chIdx,
			slice:  slice,
			slices: r.slices,
		}
		r.pwm[n] = ph.pwm
	default:
		return nil, errcode.Unsupported
	}
	return ph, nil
}

func (r *rp2Registry) ReleasePin(devID string, n int) {
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
		delete(r.pwm, n)
	}
	machine.Pin(n).Configure(machine.PinConfig{Mode: machine.PinInput})
}

func (r *rp2Registry) ClaimADC(devID string, ch int) (core.ADCHandle, error) {
	if ch < 0 || ch >= ADCInputs {
		return nil, errcode.UnknownPin
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pins.claim(devID, ADCBasePin+ch, core.FuncADC); err != nil {
		if err == errcode.PinInUse {
			return nil, errcode.ADCInUse
		}
		return nil, err
	}
	r.adcOnce.Do(machine.InitADC)
	a := machine.ADC{Pin: machine.Pin(ADCBasePin + ch)}
	a.Configure(machine.ADCConfig{})
	return &rp2ADC{ch: ch, adc: a, mu: &r.adcMu}, nil
}

func (r *rp2Registry) ReleaseADC(devID string, ch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins.release(devID, ADCBasePin+ch)
}

func (r *rp2Registry) ClaimI2C(devID string, id core.ResourceID) (drivers.I2C, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.i2c[id]
	if o == nil {
		return nil, errcode.UnknownBus
	}
	return &driversI2C{o: o}, nil
}

// Owners are long-lived per bus; nothing to do here.
func (r *rp2Registry) ReleaseI2C(devID string, id core.ResourceID) {}

func (r *rp2Registry) ClaimDisplay(devID string, spec core.DisplaySpec) (core.Framebuffer, error) {
	bus, err := r.ClaimI2C(devID, spec.Bus)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	err = r.displays.claim(devID, spec.Bus)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	d := ssd1306.NewI2C(bus)
	d.Configure(ssd1306.Config{
		Width:    spec.Width,
		Height:   spec.Height,
		Address:  spec.Addr,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	return d, nil
}

func (r *rp2Registry) ReleaseDisplay(devID string, id core.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays.release(devID, id)
}

func (r *rp2Registry) ClaimSerial(devID string, id core.ResourceID) (core.SerialPort, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.uart[id]
	if p == nil {
		return nil, errcode.UnknownBus
	}
	if err := r.uartOwner.claim(devID, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *rp2Registry) ReleaseSerial(devID string, id core.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uartOwner.release(devID, id)
}

// Close drops the per-bus I2C owners.
func (r *rp2Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.i2c {
		delete(r.i2c, id)
	}
}
