package serial_log

import (
	"bytes"
	"context"
	"sync"

	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
)

// Device is a write-only text sink on a hardware UART. It is an io.Writer;
// write errors are counted rather than returned so a missing cable never
// stalls the caller.
type Device struct {
	id   string
	bus  core.ResourceID
	port core.SerialPort
	crlf bool
	reg  core.ResourceRegistry

	mu      sync.Mutex
	scratch []byte
	written uint32
	drops   uint32
}

func (d *Device) ID() string { return d.id }

func (d *Device) Info() types.Info {
	return types.Info{SchemaVersion: 1, Driver: "serial_log", Detail: string(d.bus)}
}

func (d *Device) Init(ctx context.Context) error { return nil }

func (d *Device) Close() error {
	if d.reg != nil {
		d.reg.ReleaseSerial(d.id, d.bus)
	}
	return nil
}

func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := p
	if d.crlf && bytes.IndexByte(p, '\n') >= 0 {
		d.scratch = d.scratch[:0]
		for _, c := range p {
			if c == '\n' {
				d.scratch = append(d.scratch, '\r')
			}
			d.scratch = append(d.scratch, c)
		}
		out = d.scratch
	}
	n, err := d.port.Write(out)
	d.written += uint32(n)
	if err != nil || n < len(out) {
		d.drops++
	}
	return len(p), nil
}

// Stats returns bytes written to the port and failed writes.
func (d *Device) Stats() (written, drops uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written, d.drops
}
