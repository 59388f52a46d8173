// Package strx holds small string helpers, e.g. defaulting a device name
// to its id.
package strx

// Coalesce returns s unless it is empty, in which case it returns d.
func Coalesce(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
