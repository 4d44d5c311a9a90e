// Package effect contains the effects a scene is built from. Each effect
// owns a pixel buffer sized at patch time and redraws it in Animate.
package effect

import (
	"ledmix/pkg/device"
	"ledmix/pkg/pixel"
)

type canvas struct {
	devices []device.Device
	pixels  []pixel.Pixel
}

func (c *canvas) PatchDevices(devices []device.Device) {
	c.devices = device.Clone(devices)
	c.pixels = make([]pixel.Pixel, len(c.devices))
}

func (c *canvas) Render() []pixel.Pixel {
	return c.pixels
}
