package periph

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"joypwm-go/x/mathx"
)

// dutyFor maps a level in [0, top] to periph's duty scale.
func dutyFor(level, top uint16) gpio.Duty {
	if top == 0 {
		return 0
	}
	level = mathx.Min(level, top)
	return gpio.Duty(uint64(level) * uint64(gpio.DutyMax) / uint64(top))
}

func hz(freqHz uint64) physic.Frequency {
	return physic.Frequency(freqHz) * physic.Hertz
}
