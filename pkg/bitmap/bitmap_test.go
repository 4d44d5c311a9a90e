package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledmix/pkg/pixel"
)

func TestEncodeClamps(t *testing.T) {
	frame := []pixel.Pixel{pixel.New(2, -1, 0.5), pixel.New(0, 1, 0)}
	assert.Equal(t, []byte{255, 0, 128, 0, 255, 0}, Encode(frame))
}

func TestEncoderOrder(t *testing.T) {
	frame := []pixel.Pixel{pixel.New(1, 0.5, 0)}
	assert.Equal(t, []byte{128, 255, 0}, NewEncoder(GRB, 1).AppendTo(nil, frame))
	assert.Equal(t, []byte{0, 128, 255}, NewEncoder(BGR, 1).AppendTo(nil, frame))
}

func TestEncoderGamma(t *testing.T) {
	out := NewEncoder(RGB, 2).AppendTo(nil, []pixel.Pixel{pixel.New(1, 0.5, 0)})
	assert.Equal(t, []byte{255, 64, 0}, out)
}

func TestRGB565RoundTrip(t *testing.T) {
	out := EncodeRGB565([]pixel.Pixel{pixel.White(), pixel.New(1, 0, 0)})
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00, 0xF8}, out)

	r, g, b := DecodeRGB565(out[2], out[3])
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}
