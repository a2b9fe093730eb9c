// Package lighting provides the directional light that shades the petals.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bloom/pkg/math"
)

// Sun is a directional light placed by longitude and latitude, plus the
// ambient share of the final color.
type Sun struct {
	Longitude float32 `yaml:"longitude"` // degrees around Y
	Latitude  float32 `yaml:"latitude"`  // degrees above the horizon
	Ambient   float32 `yaml:"ambient"`   // 0..1
}

// DefaultSun lights the flower from the upper left, in front of the default camera.
func DefaultSun() Sun {
	return Sun{Longitude: 35, Latitude: 40, Ambient: 0.25}
}

// ToSun returns the unit vector pointing from the scene toward the sun.
func (s Sun) ToSun() math.Vec3 {
	lon := s.Longitude * math32.Pi / 180
	lat := s.Latitude * math32.Pi / 180

	sinLon, cosLon := math32.Sincos(lon)
	sinLat, cosLat := math32.Sincos(lat)
	return math.Vec3{X: cosLat * sinLon, Y: sinLat, Z: cosLat * cosLon}
}

// Direction returns the direction the light travels, as shaders expect.
func (s Sun) Direction() math.Vec3 {
	return s.ToSun().Scale(-1)
}

// ClampedAmbient returns Ambient limited to [0, 1].
func (s Sun) ClampedAmbient() float32 {
	return max(0, min(1, s.Ambient))
}
