package periph

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"joypwm-go/errcode"
	"joypwm-go/x/mathx"
	"joypwm-go/x/strconvx"
)

// iioADC reads one voltage input of a Linux IIO converter through sysfs,
// e.g. /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type iioADC struct {
	ch   int
	path string
	bits uint8

	mu   sync.Mutex
	last uint16
	errs uint32
}

func iioPath(dir string, ch int) string {
	return filepath.Join(dir, "in_voltage"+strconvx.Itoa(ch)+"_raw")
}

func openIIO(dir string, ch int, bits uint8) (*iioADC, error) {
	if bits == 0 || bits > 16 {
		return nil, errors.Wrapf(errcode.InvalidParams, "adc resolution %d bits", bits)
	}
	p := iioPath(dir, ch)
	if _, err := os.Stat(p); err != nil {
		return nil, errors.Wrapf(errcode.UnknownPin, "adc input %d: %v", ch, err)
	}
	return &iioADC{ch: ch, path: p, bits: bits}, nil
}

func (a *iioADC) Channel() int { return a.ch }

// Read returns a 12-bit sample. A failed read repeats the previous sample
// and is counted.
func (a *iioADC) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	raw, err := readRaw(a.path)
	if err != nil {
		a.errs++
		return a.last
	}
	a.last = mathx.MapBits(raw, a.bits, 12)
	return a.last
}

func (a *iioADC) Errors() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errs
}

func readRaw(path string) (uint32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(b))
	// Bipolar converters report negative counts near ground.
	if strings.HasPrefix(s, "-") {
		return 0, nil
	}
	v, err := strconvx.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", path)
	}
	return uint32(v), nil
}
