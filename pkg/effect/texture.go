package effect

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"

	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
	"ledmix/pkg/wave"
)

// LoadTexture reads an image from fs and scales it to a width x height
// raster.
func LoadTexture(fs afero.Fs, path string, width, height int) (*Texture, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture failed: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s failed: %w", path, err)
	}

	t := NewTexture(img, width, height)
	t.name = path
	return t, nil
}

func NewTexture(img image.Image, width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture{
		img: imaging.Resize(img, width, height, imaging.Lanczos),
	}
}

// Texture samples an image at each device position. With a roll period set
// the image scrolls, wrapping around, once per period on that axis.
type Texture struct {
	canvas
	name             string
	img              *image.NRGBA
	xPeriod, yPeriod int64
}

func (e *Texture) Name() string {
	return e.name
}

func (e *Texture) SetXPeriodMillis(period int64) {
	e.xPeriod = period
}

func (e *Texture) SetYPeriodMillis(period int64) {
	e.yPeriod = period
}

func (e *Texture) Animate(t timing.TimePoint) {
	dx := wave.Linear{Start: 0, End: 1, Period: e.xPeriod}.Value(t)
	dy := wave.Linear{Start: 0, End: 1, Period: e.yPeriod}.Value(t)

	for i, d := range e.devices {
		e.pixels[i] = e.sample(d.X+dx, d.Y+dy)
	}
}

func (e *Texture) sample(x, y float64) pixel.Pixel {
	b := e.img.Bounds()
	px := b.Min.X + wrap(x, b.Dx())
	py := b.Min.Y + wrap(y, b.Dy())
	c := e.img.NRGBAAt(px, py)
	return pixel.New(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

// wrap maps a normalized coordinate onto [0, n) with wrap-around.
func wrap(v float64, n int) int {
	v -= math.Floor(v)
	i := int(v * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
