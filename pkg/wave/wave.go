// Package wave provides stateless periodic signals over scene time. A wave
// holds only its configuration, so one value may be sampled by many effects
// in the same frame.
package wave

import (
	"math"

	"ledmix/pkg/timing"
)

type Wave interface {
	Value(t timing.TimePoint) float64
	// Interpolate maps a phase in [0,1) to an output value.
	Interpolate(x float64) float64
}

// Phase normalizes t into [0,1) for the given period. ok is false when the
// period is zero or negative, in which case the wave is constant.
func Phase(t timing.TimePoint, period int64) (x float64, ok bool) {
	if period <= 0 {
		return 0, false
	}
	dt := t.SceneTimeMillis() % period
	if dt < 0 {
		dt += period
	}
	return float64(dt) / float64(period), true
}

func sample(w Wave, start float64, period int64, t timing.TimePoint) float64 {
	x, ok := Phase(t, period)
	if !ok {
		return start
	}
	return w.Interpolate(x)
}

func lerp(start, end, x float64) float64 {
	return start + (end-start)*x
}

// Linear ramps from Start to End once per period, then jumps back.
type Linear struct {
	Start, End float64
	Period     int64
}

func (w Linear) Value(t timing.TimePoint) float64 { return sample(w, w.Start, w.Period, t) }

func (w Linear) Interpolate(x float64) float64 { return lerp(w.Start, w.End, x) }

// Triangle ramps Start to End over the first half period and back.
type Triangle struct {
	Start, End float64
	Period     int64
}

func (w Triangle) Value(t timing.TimePoint) float64 { return sample(w, w.Start, w.Period, t) }

func (w Triangle) Interpolate(x float64) float64 {
	if x < 0.5 {
		return lerp(w.Start, w.End, 2*x)
	}
	return lerp(w.End, w.Start, 2*x-1)
}

// Sine is a smooth cosine bell from Start up to End and back.
type Sine struct {
	Start, End float64
	Period     int64
}

func (w Sine) Value(t timing.TimePoint) float64 { return sample(w, w.Start, w.Period, t) }

func (w Sine) Interpolate(x float64) float64 {
	return lerp(w.Start, w.End, 0.5-0.5*math.Cos(2*math.Pi*x))
}

type HalfSine struct {
	Start, End float64
	Period     int64
}

func (w HalfSine) Value(t timing.TimePoint) float64 { return sample(w, w.Start, w.Period, t) }

func (w HalfSine) Interpolate(x float64) float64 {
	return lerp(w.Start, w.End, math.Sin(math.Pi*x))
}

type Square struct {
	Start, End float64
	Period     int64
}

func (w Square) Value(t timing.TimePoint) float64 { return sample(w, w.Start, w.Period, t) }

func (w Square) Interpolate(x float64) float64 {
	if x < 0.5 {
		return w.Start
	}
	return w.End
}
