//go:build rp2040 || rp2350

package fmtx

import (
	"io"

	"joypwm-go/x/strconvx"
)

// --- Public API (signatures match fmt) ---

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

// Sprint follows fmt: a space is added between operands when neither is a string.
func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			_, prevStr := a[i-1].(string)
			_, curStr := v.(string)
			if !prevStr && !curStr {
				b.byte(' ')
			}
		}
		b.any(v)
	}
	return string(b.buf)
}

// --- Internals: tiny formatter subset ---
// Supports %s %d %x %t %v %% with a width and the '0' flag for %d/%x.

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) pad(s string, width int, zero bool) {
	fill := byte(' ')
	if zero {
		fill = '0'
	}
	neg := zero && len(s) > 0 && s[0] == '-'
	if neg {
		b.byte('-')
		s = s[1:]
		width--
	}
	for n := width - len(s); n > 0; n-- {
		b.byte(fill)
	}
	b.str(s)
}

func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.buf = append(b.buf, x...)
	case bool:
		b.str(boolString(x))
	case error:
		b.str(x.Error())
	default:
		if i, ok := toI64(v); ok {
			b.str(strconvx.FormatInt(i, 10))
			return
		}
		if u, ok := toU64(v); ok {
			b.str(strconvx.FormatUint(u, 10))
			return
		}
		b.str("<unk>")
	}
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b.byte(c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.byte('%')
			i++
			continue
		}
		zero := false
		if i < len(format) && format[i] == '0' {
			zero = true
			i++
		}
		width := 0
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := format[i]
		arg := args[ai]
		ai++
		i++

		switch verb {
		case 'd':
			if n, ok := toI64(arg); ok {
				b.pad(strconvx.FormatInt(n, 10), width, zero)
			} else if u, ok := toU64(arg); ok {
				b.pad(strconvx.FormatUint(u, 10), width, zero)
			} else {
				b.str("%!d")
			}
		case 'x':
			if u, ok := toU64(arg); ok {
				b.pad(strconvx.FormatUint(u, 16), width, zero)
			} else if n, ok := toI64(arg); ok {
				b.pad(strconvx.FormatInt(n, 16), width, zero)
			} else {
				b.str("%!x")
			}
		case 't':
			v, _ := arg.(bool)
			b.pad(boolString(v), width, false)
		case 's', 'v':
			var sub builder
			sub.any(arg)
			b.pad(string(sub.buf), width, false)
		default:
			// Unknown verb: write it literally to aid debugging.
			b.byte('%')
			b.byte(verb)
		}
	}
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func toI64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

func toU64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	}
	return 0, false
}
