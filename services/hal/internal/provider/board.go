package provider

// RP2040 pin space. ADC inputs 0..3 sit on GP26..GP29.
const (
	GPIOMin    = 0
	GPIOMax    = 29
	ADCBasePin = 26
	ADCInputs  = 4
)

func inBoardRange(n int) bool { return n >= GPIOMin && n <= GPIOMax }

// pwmSliceOf returns the slice and channel index (0 => A, 1 => B) that
// drive GPIO n on the RP2040.
func pwmSliceOf(n int) (slice int, chIdx uint8) {
	return (n >> 1) & 7, uint8(n & 1)
}

func chRune(chIdx uint8) rune {
	if chIdx == 1 {
		return 'B'
	}
	return 'A'
}
