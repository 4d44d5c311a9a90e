package device

// Device is an opaque output slot. The mixer only cares about how many there
// are and their order; Address and position are for transports and raster
// effects.
type Device struct {
	Address int
	// X and Y are normalized to [0,1] across the rig.
	X, Y float64
}

// Clone returns a private copy of devices safe to hold across goroutines.
func Clone(devices []Device) []Device {
	if devices == nil {
		return []Device{}
	}
	return append(make([]Device, 0, len(devices)), devices...)
}

// Grid lays out width*height devices in row-major order.
func Grid(width, height int) []Device {
	if width <= 0 || height <= 0 {
		return []Device{}
	}
	devs := make([]Device, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			devs = append(devs, Device{
				Address: len(devs),
				X:       norm(x, width),
				Y:       norm(y, height),
			})
		}
	}
	return devs
}

func norm(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
