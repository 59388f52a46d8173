package types

// ---- Capability kinds & info ----

type Kind string

const (
	KindLED      Kind = "led"
	KindPWM      Kind = "pwm"
	KindButton   Kind = "button"
	KindJoystick Kind = "joystick"
	KindDisplay  Kind = "display"
	KindSerial   Kind = "serial"
)

// Info envelope each device exposes for diagnostics.
type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Detail        interface{} `json:"detail,omitempty"`
}

// ---- HAL device list ----

// HALDevice names one device for the HAL to build.
type HALDevice struct {
	ID     string      `json:"id"`     // logical device id
	Type   string      `json:"type"`   // builder name, e.g. "pwm_out"
	Params interface{} `json:"params"` // builder-specific params struct
}
