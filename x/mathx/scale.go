package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns floor((a + b/2)/b). b == 0 yields 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// ScaleU16 rescales a level in [0, from] onto [0, to] with a 32-bit
// intermediate. Levels above from saturate at to.
func ScaleU16(level, from, to uint16) uint16 {
	if from == 0 {
		return 0
	}
	if level >= from {
		return to
	}
	return uint16(uint32(level) * uint32(to) / uint32(from))
}

// MapBits narrows or widens a raw sample of srcBits to dstBits by shifting.
// The ADC returns 16-bit left-aligned samples; the joystick works in 12.
func MapBits(raw uint32, srcBits, dstBits uint8) uint16 {
	switch {
	case srcBits == dstBits:
		return uint16(raw)
	case srcBits > dstBits:
		return uint16(raw >> (srcBits - dstBits))
	default:
		return uint16(raw << (dstBits - srcBits))
	}
}
