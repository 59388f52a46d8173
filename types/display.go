package types

// RenderArea is an inclusive column/page rectangle on a page-addressed
// monochrome display (one page = 8 pixel rows).
type RenderArea struct {
	StartColumn int `json:"start_column"`
	EndColumn   int `json:"end_column"`
	StartPage   int `json:"start_page"`
	EndPage     int `json:"end_page"`
}

// BufferLen is the number of bytes a buffer for this area must hold.
func (a RenderArea) BufferLen() int {
	if a.EndColumn < a.StartColumn || a.EndPage < a.StartPage {
		return 0
	}
	return (a.EndColumn - a.StartColumn + 1) * (a.EndPage - a.StartPage + 1)
}

// FullArea covers a width x height display.
func FullArea(width, height int16) RenderArea {
	return RenderArea{
		StartColumn: 0,
		EndColumn:   int(width) - 1,
		StartPage:   0,
		EndPage:     int(height)/8 - 1,
	}
}

type DisplayInfo struct {
	Bus    string `json:"bus"`
	Addr   uint16 `json:"addr"`
	Width  int16  `json:"width"`
	Height int16  `json:"height"`
}
