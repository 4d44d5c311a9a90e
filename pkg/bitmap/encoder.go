package bitmap

import (
	"math"

	"ledmix/pkg/pixel"
)

type Order string

const (
	RGB Order = "rgb"
	GRB Order = "grb"
	BGR Order = "bgr"
)

func NewEncoder(order Order, gamma float64) *Encoder {
	if gamma <= 0 {
		gamma = 1
	}
	e := &Encoder{order: order}
	for i := range e.lut {
		e.lut[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, gamma)))
	}
	return e
}

// Encoder turns float frames into 8-bit channel bytes. Channels are clipped
// to [0,1] here, which is the only place over-bright values are clamped.
type Encoder struct {
	order Order
	lut   [256]uint8
}

func (e *Encoder) Len(frame []pixel.Pixel) int {
	return 3 * len(frame)
}

// AppendTo appends the encoded frame to dst and returns the extended slice.
func (e *Encoder) AppendTo(dst []byte, frame []pixel.Pixel) []byte {
	for _, p := range frame {
		r, g, b := e.lut[to8(p.R)], e.lut[to8(p.G)], e.lut[to8(p.B)]
		switch e.order {
		case GRB:
			dst = append(dst, g, r, b)
		case BGR:
			dst = append(dst, b, g, r)
		default:
			dst = append(dst, r, g, b)
		}
	}
	return dst
}

func Encode(frame []pixel.Pixel) []byte {
	return NewEncoder(RGB, 1).AppendTo(make([]byte, 0, 3*len(frame)), frame)
}

func to8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	} else if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
