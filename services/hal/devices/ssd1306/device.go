package ssd1306

import (
	"context"

	"joypwm-go/errcode"
	"joypwm-go/services/hal/internal/core"
	"joypwm-go/types"
)

// Device is a page-addressed monochrome OLED. Each byte covers eight
// vertical pixels of one column within a page.
type Device struct {
	id   string
	spec core.DisplaySpec
	fb   core.Framebuffer
	reg  core.ResourceRegistry
}

func (d *Device) ID() string { return d.id }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "ssd1306",
		Detail: types.DisplayInfo{
			Bus:    string(d.spec.Bus),
			Addr:   d.spec.Addr,
			Width:  d.spec.Width,
			Height: d.spec.Height,
		},
	}
}

// Init blanks the panel once.
func (d *Device) Init(ctx context.Context) error {
	area := d.FullArea()
	return d.Render(make([]byte, area.BufferLen()), area)
}

func (d *Device) Close() error {
	if d.reg != nil {
		d.reg.ReleaseDisplay(d.id, d.spec.Bus)
	}
	return nil
}

func (d *Device) FullArea() types.RenderArea { return types.FullArea(d.spec.Width, d.spec.Height) }

// Render copies buf, laid out row-major by page over area, into the frame
// and pushes the frame to the panel.
func (d *Device) Render(buf []byte, area types.RenderArea) error {
	w, h := d.fb.Size()
	pages := int(h) / 8
	if area.StartColumn < 0 || area.EndColumn >= int(w) || area.StartPage < 0 || area.EndPage >= pages {
		return errcode.InvalidParams
	}
	n := area.BufferLen()
	if n == 0 || len(buf) < n {
		return errcode.InvalidParams
	}

	frame := d.fb.GetBuffer()
	cols := area.EndColumn - area.StartColumn + 1
	for page := area.StartPage; page <= area.EndPage; page++ {
		src := buf[(page-area.StartPage)*cols:]
		dst := frame[page*int(w)+area.StartColumn:]
		copy(dst[:cols], src[:cols])
	}
	return d.fb.Display()
}
