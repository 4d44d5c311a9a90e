package proto

import (
	"ledmix/pkg/pixel"
)

// Transport carries rendered frames to the LED controller. Write must not
// retain frame after it returns; the mixer reuses that buffer.
type Transport interface {
	Startup() error
	Shutdown() error
	Write(frame []pixel.Pixel) error
}
