package show

import (
	"github.com/samber/lo"

	"ledmix/pkg/pixel"
)

func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{max: max}
}

// History keeps copies of the most recent frames. Slots are recycled so a
// steady stream of frames does not allocate.
type History struct {
	max   int
	items [][]pixel.Pixel
}

func (h *History) Add(frame []pixel.Pixel) {
	var slot []pixel.Pixel
	if len(h.items) >= h.max {
		slot = h.items[0]
		h.items = append(h.items[:0], h.items[1:]...)
	}
	h.items = append(h.items, append(slot[:0], frame...))
}

func (h *History) Len() int {
	return len(h.items)
}

// Curr returns the latest frame. The slice is reused once it ages out.
func (h *History) Curr() []pixel.Pixel {
	f, _ := lo.Last(h.items)
	return f
}

func (h *History) Prev() []pixel.Pixel {
	if len(h.items) < 2 {
		return nil
	}
	return h.items[len(h.items)-2]
}
