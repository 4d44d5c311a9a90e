package cue

import "ledmix/pkg/pixel"

func NewFrame(columns, rows int) *Frame {
	f := &Frame{Weft: make([][]pixel.Pixel, columns)}
	for i := range f.Weft {
		f.Weft[i] = make([]pixel.Pixel, rows)
	}
	return f
}

// Frame is the drawing surface shared by the cues of one effect. Only the
// owning effect's render goroutine touches it.
type Frame struct {
	Background pixel.Pixel
	// Weft is indexed [column][row].
	Weft [][]pixel.Pixel
}

func (f *Frame) Columns() int {
	return len(f.Weft)
}

func (f *Frame) Rows() int {
	if len(f.Weft) == 0 {
		return 0
	}
	return len(f.Weft[0])
}

func (f *Frame) Cells() int {
	return f.Columns() * f.Rows()
}

// Cell addresses the weft in row-major order.
func (f *Frame) Cell(i int) *pixel.Pixel {
	cols := f.Columns()
	return &f.Weft[i%cols][i/cols]
}

func (f *Frame) FillWeft(p pixel.Pixel) {
	for _, col := range f.Weft {
		pixel.Fill(col, p)
	}
}
