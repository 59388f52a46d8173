package types

// MaxADC is the exclusive upper bound of a 12-bit conversion.
const MaxADC = 4096

// AxisReading holds one magnitude per joystick axis, each in [0, MaxADC).
type AxisReading struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

type JoystickInfo struct {
	PinX     int `json:"pin_x"`
	PinY     int `json:"pin_y"`
	ChannelX int `json:"channel_x"`
	ChannelY int `json:"channel_y"`
}

// Status is the periodic report handed to the logger.
// Axis values are raw magnitudes; percentages are derived when formatted.
type Status struct {
	VRX     uint16 `json:"vrx"`
	VRY     uint16 `json:"vry"`
	SW      bool   `json:"sw"`
	ButtonA bool   `json:"button_a"`
	ButtonB bool   `json:"button_b"`
	TSms    uint32 `json:"ts_ms"` // ms since boot
}
