//go:build !(rp2040 || rp2350)

package strconvx

import "strconv"

// Host builds delegate straight to strconv; the MCU file keeps the same
// signatures without pulling strconv's float tables into flash.

func Itoa(i int) string                    { return strconv.Itoa(i) }
func FormatInt(i int64, base int) string   { return strconv.FormatInt(i, base) }
func FormatUint(u uint64, base int) string { return strconv.FormatUint(u, base) }
func ParseUint(s string, base, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, base, bitSize)
}
