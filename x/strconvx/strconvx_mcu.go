//go:build rp2040 || rp2350

package strconvx

// Integer-only subset of strconv for MCU builds.
// Supported bases: 2..36.

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

type rangeError struct{}

func (rangeError) Error() string { return "value out of range" }

// ParseUint parses s in the given base (0 => 10). Values wider than bitSize
// are rejected, matching strconv.
func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base == 0 {
		base = 10
	}
	if base < 2 || base > 36 || len(s) == 0 {
		return 0, parseError{}
	}
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'z':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'Z':
			d = c - 'A' + 10
		default:
			return 0, parseError{}
		}
		if int(d) >= base {
			return 0, parseError{}
		}
		if v > (^uint64(0)-uint64(d))/uint64(base) {
			return 0, rangeError{}
		}
		v = v*uint64(base) + uint64(d)
	}
	if bitSize < 64 && v >= 1<<uint(bitSize) {
		return 0, rangeError{}
	}
	return v, nil
}
