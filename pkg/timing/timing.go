// Package timing holds the scene clock value passed through every animate
// call.
package timing

import "time"

func At(sceneMillis int64) TimePoint {
	return TimePoint{sceneMillis: sceneMillis}
}

func New(sceneMillis int64, frame uint64) TimePoint {
	return TimePoint{sceneMillis: sceneMillis, frame: frame}
}

// Since builds the TimePoint for the scene that started at start. It never
// reads the wall clock itself.
func Since(start, now time.Time, frame uint64) TimePoint {
	return New(now.Sub(start).Milliseconds(), frame)
}

// TimePoint is an immutable scene-relative timestamp.
type TimePoint struct {
	sceneMillis int64
	frame       uint64
}

func (t TimePoint) SceneTimeMillis() int64 {
	return t.sceneMillis
}

func (t TimePoint) Frame() uint64 {
	return t.frame
}

func (t TimePoint) Seconds() float64 {
	return float64(t.sceneMillis) / 1000
}

func (t TimePoint) Sub(start int64) int64 {
	return t.sceneMillis - start
}

// FractionElapsed reports (now - start) / duration clamped to [0,1]. A
// duration of zero or less is always complete.
func FractionElapsed(now TimePoint, start, duration int64) float64 {
	if duration <= 0 {
		return 1
	}
	f := float64(now.sceneMillis-start) / float64(duration)
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}
