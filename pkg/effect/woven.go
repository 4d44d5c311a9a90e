package effect

import (
	"ledmix/pkg/cue"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

type WovenTiming struct {
	IntroMillis  int64 `yaml:"intro_millis"`
	WeftMillis   int64 `yaml:"weft_millis"`
	FinaleMillis int64 `yaml:"finale_millis"`
}

func DefaultWovenTiming() WovenTiming {
	return WovenTiming{
		IntroMillis:  3000,
		WeftMillis:   30000,
		FinaleMillis: 12000,
	}
}

func NewWoven(columns, rows int, tm WovenTiming) *Woven {
	frame := cue.NewFrame(columns, rows)
	weft := cue.NewWeft(tm.WeftMillis, frame)
	return &Woven{
		frame: frame,
		weft:  weft,
		playlist: cue.NewPlaylist(true,
			cue.NewFade(tm.IntroMillis, frame, pixel.Black(), pixel.New(0.05, 0.02, 0)),
			weft,
			cue.NewPlateau(tm.FinaleMillis, frame),
		),
	}
}

// Woven weaves threads across the rig: a background fade, a progressive
// weft fill, then a pulsing finale, over and over. Each device shows the
// weft cell it falls on, brightened by the background.
type Woven struct {
	canvas
	frame    *cue.Frame
	weft     *cue.Weft
	playlist *cue.Playlist
}

func (e *Woven) Frame() *cue.Frame {
	return e.frame
}

func (e *Woven) Playlist() *cue.Playlist {
	return e.playlist
}

func (e *Woven) SetThreadColor(p pixel.Pixel) {
	e.weft.Thread = p
}

func (e *Woven) Animate(t timing.TimePoint) {
	e.playlist.Animate(t)

	cells := e.frame.Cells()
	n := len(e.pixels)
	for i := range e.pixels {
		p := e.frame.Background
		if cells > 0 {
			p.BlendWith(*e.frame.Cell(i * cells / n), 1, pixel.MaxOp)
		}
		e.pixels[i] = p
	}
}

// LevelChanged restarts the show from the intro when the layer is faded up
// from black.
func (e *Woven) LevelChanged(oldLevel, newLevel float64) {
	if oldLevel <= 0 && newLevel > 0 {
		e.playlist.Reset()
	}
}
