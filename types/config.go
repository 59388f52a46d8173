package types

// BoardConfig is the complete wiring and timing for one board.
// It is built once at startup and never mutated afterwards.
type BoardConfig struct {
	Name    string        `json:"name"`
	Pins    Pins          `json:"pins"`
	ADC     ADCConfig     `json:"adc"`
	PWM     PWMConfig     `json:"pwm"`
	Timing  Timing        `json:"timing"`
	Display DisplayConfig `json:"display"`
	Log     LogConfig     `json:"log"`
}

// Pins are GPIO numbers, except VRX/VRY which are ADC inputs (see ADCConfig).
type Pins struct {
	VRX      int `json:"vrx"`
	VRY      int `json:"vry"`
	SW       int `json:"sw"`
	ButtonA  int `json:"button_a"`
	ButtonB  int `json:"button_b"`
	LEDBlue  int `json:"led_blue"`
	LEDGreen int `json:"led_green"`
	LEDRed   int `json:"led_red"`
}

type ADCConfig struct {
	// Base is the pin number of ADC input 0 (26 on RP2040).
	Base     int `json:"base"`
	Channels int `json:"channels"`
	// Virtual means VRX/VRY name converter channels, not GPIOs.
	Virtual bool `json:"virtual,omitempty"`
}

type PWMConfig struct {
	Wrap   uint16 `json:"wrap"`
	FreqHz uint64 `json:"freq_hz"`
}

type Timing struct {
	DebounceMs  uint16 `json:"debounce_ms"`
	ReportMs    uint32 `json:"report_ms"`
	LoopMs      uint32 `json:"loop_ms"`
	BootDelayMs uint32 `json:"boot_delay_ms"`
}

type DisplayConfig struct {
	Enabled bool   `json:"enabled"`
	Bus     string `json:"bus"`
	SDA     int    `json:"sda"`
	SCL     int    `json:"scl"`
	Hz      uint32 `json:"hz"`
	Addr    uint16 `json:"addr"`
	Width   int16  `json:"width"`
	Height  int16  `json:"height"`
}

// LogConfig optionally mirrors status lines onto a hardware UART.
// An empty UART disables the mirror.
type LogConfig struct {
	UART string `json:"uart,omitempty"`
	TX   int    `json:"tx"`
	RX   int    `json:"rx"`
	Baud uint32 `json:"baud"`
}

// ResourcePlan specifies bus wiring and operating parameters.
// Providers consume this plan to instantiate resource owners.
type ResourcePlan struct {
	I2C  []I2CPlan
	UART []UARTPlan
}

type I2CPlan struct {
	ID  string // e.g. "i2c1"
	SDA int    // GPIO number
	SCL int    // GPIO number
	Hz  uint32 // bus frequency
}

type UARTPlan struct {
	ID   string // e.g. "uart0"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}
