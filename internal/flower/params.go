// Package flower implements the procedural flower: radial petal layout,
// per-petal time-coherent surface deformation and the controller that keeps
// both in step with the live shape parameters.
package flower

import (
	"fmt"
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bloom/pkg/math"
)

// MaxPetals caps the petal count accepted from upstream so a corrupt value
// cannot allocate unbounded geometry.
const MaxPetals = 64

// ShapeParameters is one snapshot of the flower's tunable shape.
// Fields are independent; no combination is invalid.
type ShapeParameters struct {
	PetalCount  int     `yaml:"petal_count"`
	PetalSize   float32 `yaml:"petal_size"`
	Elongation  float32 `yaml:"elongation"`
	Compression float32 `yaml:"compression"`
	Twist       float32 `yaml:"twist"`
	NoiseScale  float32 `yaml:"noise_scale"`
	NoiseSpeed  float32 `yaml:"noise_speed"`
	Color       Color   `yaml:"color"`
}

// DefaultColor is the petal color used when none is configured.
var DefaultColor = Color{R: 1, G: 0x69 / 255.0, B: 0xb4 / 255.0}

// DefaultParameters returns the initial shape of a freshly started flower.
func DefaultParameters() ShapeParameters {
	return ShapeParameters{
		PetalCount:  5,
		PetalSize:   2,
		Elongation:  1,
		Compression: 1,
		Twist:       0,
		NoiseScale:  1,
		NoiseSpeed:  0.5,
		Color:       DefaultColor,
	}
}

// Range describes the suggested UI range and step of a parameter.
// Ranges guide editors; the deformation accepts any finite value.
type Range struct {
	Min, Max, Step float32
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	return max(r.Min, min(r.Max, v))
}

// Suggested editing ranges.
var (
	PetalCountRange  = Range{Min: 1, Max: 20, Step: 1}
	PetalSizeRange   = Range{Min: 0.5, Max: 5, Step: 0.1}
	ElongationRange  = Range{Min: 0.5, Max: 2, Step: 0.05}
	CompressionRange = Range{Min: 0.5, Max: 2, Step: 0.05}
	TwistRange       = Range{Min: -2, Max: 2, Step: 0.05}
	NoiseScaleRange  = Range{Min: 0.1, Max: 5, Step: 0.1}
	NoiseSpeedRange  = Range{Min: 0, Max: 2, Step: 0.05}
)

// Sanitize replaces non-finite fields of p so that no NaN or infinity can
// reach geometry. A bad field takes the value from lastGood when that is
// finite, otherwise a neutral default: 1 for multiplicative fields (size,
// elongation, compression, noise scale) and 0 for additive ones (twist,
// noise speed). Color channels are clamped to [0, 1]. The petal count is
// clamped to [1, MaxPetals].
//
// The names of the replaced fields are returned; nil means p was clean.
func Sanitize(p, lastGood ShapeParameters) (ShapeParameters, []string) {
	var replaced []string

	fix := func(name string, v *float32, good, neutral float32) {
		if math.IsFinite(*v) {
			return
		}
		replaced = append(replaced, name)
		if math.IsFinite(good) {
			*v = good
		} else {
			*v = neutral
		}
	}

	fix("petal_size", &p.PetalSize, lastGood.PetalSize, 1)
	fix("elongation", &p.Elongation, lastGood.Elongation, 1)
	fix("compression", &p.Compression, lastGood.Compression, 1)
	fix("twist", &p.Twist, lastGood.Twist, 0)
	fix("noise_scale", &p.NoiseScale, lastGood.NoiseScale, 1)
	fix("noise_speed", &p.NoiseSpeed, lastGood.NoiseSpeed, 0)

	if p.PetalCount < 1 || p.PetalCount > MaxPetals {
		replaced = append(replaced, "petal_count")
		p.PetalCount = max(1, min(MaxPetals, p.PetalCount))
	}

	if c := p.Color.clamped(); c != p.Color {
		replaced = append(replaced, "color")
		p.Color = c
	}

	return p, replaced
}

// Color is a linear RGB color with channels in [0, 1].
// It is written to YAML as a "#rrggbb" hex string.
type Color struct {
	R, G, B float32
}

// ParseColor parses a "#rrggbb" or "#rgb" hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// ShiftHue rotates the hue by deg degrees, keeping saturation and value.
func (c Color) ShiftHue(deg float64) Color {
	h, s, v := c.clamped().colorful().Hsv()
	h = gomath.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(h, s, v))
}

// Array returns the channels as an RGB array.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c Color) clamped() Color {
	ch := func(v float32) float32 {
		if !math.IsFinite(v) {
			return 0
		}
		return max(0, min(1, v))
	}
	return Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}
