package flower

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bloom/pkg/math"
)

// Layout constants relative to the petal size.
const (
	ringRadiusFactor = 0.5
	petalScaleFactor = 0.2
)

// Placement is the static transform of one petal within the flower.
type Placement struct {
	Position  math.Vec3
	RotationZ float32 // radians
	Scale     float32
}

// Angle returns the petal's angular position around the center in radians.
// Petals face outward, so this equals RotationZ.
func (pl Placement) Angle() float32 {
	return pl.RotationZ
}

// ModelMatrix returns the petal's object-to-flower transform
// (translate, then rotate about Z, then uniform scale).
func (pl Placement) ModelMatrix() math.Mat4 {
	return math.TranslateRotateZScale(pl.Position, pl.RotationZ, pl.Scale)
}

// Layout places petalCount petals evenly on a ring in the XY plane.
// Petal i sits at angle i/petalCount of a full turn, at distance
// petalSize/2 from the center, rotated to face outward and scaled to
// petalSize/5. A count below one yields no petals.
func Layout(petalCount int, petalSize float32) []Placement {
	if petalCount < 1 {
		return nil
	}

	placements := make([]Placement, petalCount)
	radius := petalSize * ringRadiusFactor
	for i := range placements {
		angle := float32(i) / float32(petalCount) * 2 * math32.Pi
		placements[i] = Placement{
			Position: math.Vec3{
				X: math32.Cos(angle) * radius,
				Y: math32.Sin(angle) * radius,
			},
			RotationZ: angle,
			Scale:     petalSize * petalScaleFactor,
		}
	}
	return placements
}
