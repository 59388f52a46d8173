package config

import "joypwm-go/types"

// picoBreadboard is a bare Pico with a thumb joystick, two tact switches and
// an RGB LED on a breadboard. No display; logs go to USB only.
func picoBreadboard() types.BoardConfig {
	c := Default()
	c.Name = "pico_breadboard"
	c.Pins.ButtonA = 14
	c.Pins.ButtonB = 15
	c.Pins.LEDBlue = 16
	c.Pins.LEDGreen = 17
	c.Pins.LEDRed = 18
	c.Display = types.DisplayConfig{}
	c.Log = types.LogConfig{}
	return c
}

// raspberryPi runs the same loop on a Pi. BCM numbering; the axes come from
// an external ADC exposed through Linux IIO, so VRX/VRY are input numbers.
// GPIO12/13 are the hardware PWM pins.
func raspberryPi() types.BoardConfig {
	c := Default()
	c.Name = "rpi"
	c.Pins = types.Pins{
		VRX:      0,
		VRY:      1,
		SW:       22,
		ButtonA:  5,
		ButtonB:  6,
		LEDBlue:  12,
		LEDGreen: 13,
		LEDRed:   16,
	}
	c.ADC = types.ADCConfig{Base: 0, Channels: 4, Virtual: true}
	c.PWM.FreqHz = 1000
	c.Timing.BootDelayMs = 0
	c.Display = types.DisplayConfig{}
	c.Log = types.LogConfig{}
	return c
}
