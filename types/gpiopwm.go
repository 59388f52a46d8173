package types

// ------------------------
// Button
// ------------------------

type ButtonInfo struct {
	Pin        int    `json:"pin"`
	DebounceMs uint16 `json:"debounce_ms"`
}

type ButtonValue struct {
	Pressed bool `json:"pressed"`
}

// ------------------------
// LED (boolean LED; use PWM for brightness)
// ------------------------

type LEDInfo struct {
	Pin int `json:"pin"`
}

type LEDValue struct {
	On bool `json:"on"`
}

// ------------------------
// PWM
// ------------------------

type PWMInfo struct {
	Pin     int    `json:"pin"`
	Slice   int    `json:"slice"`
	Channel string `json:"channel,omitempty"` // "A" or "B"
	FreqHz  uint64 `json:"freq_hz,omitempty"`
	Top     uint16 `json:"top"`
}

type PWMValue struct {
	Level   uint16 `json:"level"` // 0..Top
	Enabled bool   `json:"enabled"`
}
