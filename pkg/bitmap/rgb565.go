package bitmap

import "ledmix/pkg/pixel"

// EncodeRGB565 packs each pixel into two little-endian bytes with 5 bits
// for red, 6 bits for green and 5 bits for blue:
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
func EncodeRGB565(frame []pixel.Pixel) []byte {
	out := make([]byte, 0, 2*len(frame))
	for _, p := range frame {
		c := toRGB565(to8(p.R), to8(p.G), to8(p.B))
		out = append(out, byte(c&0xFF), byte(c>>8))
	}
	return out
}

// toRGB565 keeps the highest 5 or 6 bits of each channel.
func toRGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}

// DecodeRGB565 expands a packed pixel back to 8-bit channels by repeating
// the high bits into the low bits, so all-zero and all-one patterns map to
// 0 and 255.
func DecodeRGB565(lo, hi byte) (r, g, b uint8) {
	c := uint16(hi)<<8 | uint16(lo)
	r5 := uint8(c >> 11)
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}
