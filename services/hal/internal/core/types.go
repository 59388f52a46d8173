package core

import (
	"context"

	"joypwm-go/types"
	"joypwm-go/x/timex"

	"tinygo.org/x/drivers"
)

type ResourceID string // e.g. "i2c1", "uart0"

// ---- Pin functions ----

type PinFunc uint8

const (
	FuncGPIOIn PinFunc = iota
	FuncGPIOOut
	FuncPWM
	FuncADC
	FuncBus // held by an I2C or UART controller from the resource plan
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// ---- Handles ----

type GPIOHandle interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(bool)
	Get() bool
	Toggle()
}

// PWMHandle is one channel of a PWM slice. Levels are logical, 0..top as
// passed to Configure; the provider scales to the hardware counter.
// Set stores the level and drives it only while the channel is enabled.
type PWMHandle interface {
	Configure(freqHz uint64, top uint16) error
	Set(level uint16)
	Enable(on bool)
	Info() (slice int, ch rune, pin int)
}

type PinHandle interface {
	Pin() int
	AsGPIO() GPIOHandle
	AsPWM() PWMHandle
}

// ADCHandle is one input of the shared converter. Read selects the input,
// runs a single conversion and returns a 12-bit sample.
type ADCHandle interface {
	Channel() int
	Read() uint16
}

// Framebuffer is a page-addressed monochrome display buffer.
// *ssd1306.Device satisfies it directly.
type Framebuffer interface {
	Size() (w, h int16)
	GetBuffer() []byte
	Display() error
}

type DisplaySpec struct {
	Bus    ResourceID
	Addr   uint16
	Width  int16
	Height int16
}

type SerialPort interface {
	Write(p []byte) (int, error)
}

// ---- Registry ----

type ResourceRegistry interface {
	ClaimPin(devID string, n int, fn PinFunc) (PinHandle, error)
	ReleasePin(devID string, n int)

	ClaimADC(devID string, ch int) (ADCHandle, error)
	ReleaseADC(devID string, ch int)

	ClaimI2C(devID string, id ResourceID) (drivers.I2C, error)
	ReleaseI2C(devID string, id ResourceID)

	ClaimDisplay(devID string, spec DisplaySpec) (Framebuffer, error)
	ReleaseDisplay(devID string, id ResourceID)

	ClaimSerial(devID string, id ResourceID) (SerialPort, error)
	ReleaseSerial(devID string, id ResourceID)

	Close()
}

// ---- Device model ----

type Device interface {
	ID() string
	Info() types.Info
	Init(ctx context.Context) error
	Close() error
}

// Resources are injected by the HAL into every builder.
type Resources struct {
	Reg   ResourceRegistry
	Clock timex.Clock
}

type BuilderInput struct {
	ID, Type string
	Params   any
	Res      Resources
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}
