package flower

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/bloom/internal/engine/mesh"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/pkg/math"
)

// NoiseAmplitude scales the sampled noise before it offsets a vertex.
const NoiseAmplitude = 0.2

// PetalDeformer animates one petal. It owns the petal's undeformed base
// mesh and its noise phase, and rebuilds the deformed mesh from the base on
// every Advance so that no error accumulates between frames.
type PetalDeformer struct {
	base  *mesh.Mesh
	out   *mesh.Mesh
	field noise.Field
	phase float64
}

// NewPetalDeformer takes ownership of base. The base mesh is never
// modified; callers must not share it with another deformer.
func NewPetalDeformer(base *mesh.Mesh, field noise.Field) *PetalDeformer {
	if field == nil {
		field = noise.Zero{}
	}
	return &PetalDeformer{
		base:  base,
		out:   mesh.NewLike(base),
		field: field,
	}
}

// Base returns the undeformed mesh. It must be treated as read-only.
func (d *PetalDeformer) Base() *mesh.Mesh {
	return d.base
}

// Phase returns the accumulated noise phase.
func (d *PetalDeformer) Phase() float64 {
	return d.phase
}

// VertexCount returns the number of vertices in the petal.
func (d *PetalDeformer) VertexCount() int {
	return d.base.VertexCount()
}

// Advance moves the noise phase forward by dt*p.NoiseSpeed and returns the
// petal deformed for p at the new phase, with fresh normals. The returned
// mesh is owned by the deformer and overwritten by the next call.
//
// The phase never decreases: negative or non-finite steps are ignored.
// p is expected to be sanitized; see Sanitize.
func (d *PetalDeformer) Advance(dt float32, p ShapeParameters) *mesh.Mesh {
	if step := float64(dt) * float64(p.NoiseSpeed); step > 0 && !gomath.IsInf(step, 1) {
		d.phase += step
	}

	for i, v := range d.base.Positions {
		d.out.Positions[i] = DeformVertex(d.field, v, p, d.phase)
	}
	mesh.ComputeNormals(d.out.Positions, d.out.Indices, d.out.Normals)

	return d.out
}

// DeformVertex applies the petal deformation to a single base vertex.
// The stages run in a fixed order, each consuming the previous result:
// isotropic noise offset, elongation along Y, radial compression in XZ and
// twist about Y. A stage whose result overflows is skipped, so extreme but
// finite parameters never produce NaN or Inf.
func DeformVertex(field noise.Field, v [3]float32, p ShapeParameters, phase float64) [3]float32 {
	x, y, z := v[0], v[1], v[2]

	// The same offset goes on all three axes.
	n := float32(field.Sample(float64(x*p.NoiseScale), float64(y*p.NoiseScale), phase)) * NoiseAmplitude
	if math.IsFinite(n) {
		x, y, z = x+n, y+n, z+n
	}

	if ey := Elongate(y, p.Elongation); math.IsFinite(ey) {
		y = ey
	}

	f := CompressionFactor(y, p.Compression)
	if cx, cz := x*f, z*f; math.IsFinite(cx) && math.IsFinite(cz) {
		x, z = cx, cz
	}

	xz := Twist(math.Vec2{X: x, Y: z}, y, p.Twist)
	if math.IsFinite(xz.X) && math.IsFinite(xz.Y) {
		x, z = xz.X, xz.Y
	}
	return [3]float32{x, y, z}
}

// Elongate stretches a height value. Points far from the equator move the
// most, giving a tapered stretch rather than a uniform scale.
func Elongate(y, elongation float32) float32 {
	return y * (1 + (elongation-1)*math32.Abs(y))
}

// CompressionFactor is the XZ scale applied at height y. It is strongest at
// the equator and fades toward |y| = 1.
func CompressionFactor(y, compression float32) float32 {
	return 1 + (compression-1)*(1-math32.Abs(y))
}

// Twist rotates the XZ components of a vertex about the Y axis by
// y*twist full turns. An angle that overflows leaves xz unrotated.
func Twist(xz math.Vec2, y, twist float32) math.Vec2 {
	angle := y * twist * 2 * math32.Pi
	if twist == 0 || !math.IsFinite(angle) {
		return xz
	}
	return xz.Rotate(angle)
}
