package flower

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/bloom/internal/engine/mesh"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/pkg/math"
)

// neutralParameters leaves every geometric stage as identity.
func neutralParameters() ShapeParameters {
	p := DefaultParameters()
	p.Elongation = 1
	p.Compression = 1
	p.Twist = 0
	p.NoiseScale = 0
	p.NoiseSpeed = 0
	return p
}

func newTestDeformer(field noise.Field) *PetalDeformer {
	return NewPetalDeformer(mesh.BuildSphere(1, 24, 16), field)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAdvanceIdentity(t *testing.T) {
	d := newTestDeformer(noise.Zero{})

	out := d.Advance(0.016, neutralParameters())

	for i, v := range d.Base().Positions {
		if out.Positions[i] != v {
			t.Fatalf("vertex %d moved under neutral parameters: %v -> %v", i, v, out.Positions[i])
		}
	}
}

func TestAdvanceIdentityWithRealNoise(t *testing.T) {
	field := noise.NewSimplex(noise.DefaultSeed)
	d := newTestDeformer(field)

	out := d.Advance(0, neutralParameters())

	// With noise scale 0 every vertex samples the same point, so the whole
	// petal shifts by one constant offset.
	c := float32(field.Sample(0, 0, 0)) * NoiseAmplitude
	for i, v := range d.Base().Positions {
		for axis := 0; axis < 3; axis++ {
			if got := out.Positions[i][axis] - v[axis]; !approxEqual(got, c, 1e-6) {
				t.Fatalf("vertex %d axis %d offset %v, want %v", i, axis, got, c)
			}
		}
	}
}

func TestAdvanceIsotropicNoise(t *testing.T) {
	d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))
	p := neutralParameters()
	p.NoiseScale = 1

	out := d.Advance(0, p)

	for i, v := range d.Base().Positions {
		dx := out.Positions[i][0] - v[0]
		dy := out.Positions[i][1] - v[1]
		dz := out.Positions[i][2] - v[2]
		if !approxEqual(dx, dy, 1e-5) || !approxEqual(dx, dz, 1e-5) {
			t.Fatalf("vertex %d: offsets differ per axis (%v, %v, %v)", i, dx, dy, dz)
		}
		if abs32(dx) > NoiseAmplitude+1e-5 {
			t.Fatalf("vertex %d: offset %v exceeds amplitude", i, dx)
		}
	}
}

func TestAdvanceVertexCountInvariant(t *testing.T) {
	d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))
	n := d.VertexCount()

	grid := []ShapeParameters{
		DefaultParameters(),
		{PetalCount: 1, PetalSize: 0.5, Elongation: 0.5, Compression: 0.5, Twist: -2, NoiseScale: 0.1, NoiseSpeed: 0},
		{PetalCount: 20, PetalSize: 5, Elongation: 2, Compression: 2, Twist: 2, NoiseScale: 5, NoiseSpeed: 2},
		{PetalCount: 3, PetalSize: 0, Elongation: 0, Compression: 0, Twist: 0, NoiseScale: 0, NoiseSpeed: 1},
	}

	for frame := 0; frame < 5; frame++ {
		for _, p := range grid {
			out := d.Advance(0.02, p)
			if len(out.Positions) != n || len(out.Normals) != n {
				t.Fatalf("frame %d: got %d positions / %d normals, want %d", frame, len(out.Positions), len(out.Normals), n)
			}
		}
	}
}

func TestAdvanceElongationMonotonic(t *testing.T) {
	tests := []struct {
		elongation float32
		stretch    bool
	}{
		{1.2, true},
		{2, true},
		{0.8, false},
		{0.5, false},
	}

	for _, tt := range tests {
		d := newTestDeformer(noise.Zero{})
		p := neutralParameters()
		p.Elongation = tt.elongation

		out := d.Advance(0, p)
		for i, v := range d.Base().Positions {
			if v[1] == 0 {
				continue
			}
			y, yp := abs32(v[1]), abs32(out.Positions[i][1])
			if tt.stretch && yp < y {
				t.Fatalf("elongation %v: vertex %d |y'| %v < |y| %v", tt.elongation, i, yp, y)
			}
			if !tt.stretch && yp > y {
				t.Fatalf("elongation %v: vertex %d |y'| %v > |y| %v", tt.elongation, i, yp, y)
			}
		}
	}
}

func TestAdvanceZeroTwistIsIdentityRotation(t *testing.T) {
	for _, shape := range [][2]float32{{1, 1}, {1.7, 0.6}, {0.5, 2}} {
		d := newTestDeformer(noise.Zero{})
		p := neutralParameters()
		p.Elongation, p.Compression = shape[0], shape[1]

		out := d.Advance(0, p)
		for i, v := range d.Base().Positions {
			y := Elongate(v[1], p.Elongation)
			f := CompressionFactor(y, p.Compression)
			want := [3]float32{v[0] * f, y, v[2] * f}
			if out.Positions[i] != want {
				t.Fatalf("shape %v vertex %d: got %v, want %v", shape, i, out.Positions[i], want)
			}
		}
	}
}

func TestAdvanceTwistPreservesRadius(t *testing.T) {
	d := newTestDeformer(noise.Zero{})
	p := neutralParameters()
	p.Twist = 0.75

	out := d.Advance(0, p)
	for i, v := range d.Base().Positions {
		got := out.Positions[i]
		if got[1] != v[1] {
			t.Fatalf("vertex %d: twist changed height %v -> %v", i, v[1], got[1])
		}
		r0 := math.Vec2{X: v[0], Y: v[2]}.Length()
		r1 := math.Vec2{X: got[0], Y: got[2]}.Length()
		if !approxEqual(r0, r1, 1e-5) {
			t.Fatalf("vertex %d: radius %v -> %v", i, r0, r1)
		}
	}
}

func TestDeformVertexStageOrder(t *testing.T) {
	// A constant field makes the noise stage easy to follow by hand.
	field := noise.Constant(0.5) // offset 0.1 on every axis
	p := ShapeParameters{Elongation: 2, Compression: 0.5, Twist: 0.25, NoiseScale: 1}

	got := DeformVertex(field, [3]float32{0.4, 0.4, 0}, p, 0)

	// noise: (0.5, 0.5, 0.1)
	// elongation: y' = 0.5 * (1 + 1*0.5) = 0.75
	// compression: f = 1 - 0.5*(1-0.75) = 0.875 -> (0.4375, 0.75, 0.0875)
	// twist: angle = 0.75 * 0.25 * 2pi = 3pi/8
	angle := 3 * gomath.Pi / 8
	x, z := 0.4375, 0.0875
	want := [3]float32{
		float32(x*gomath.Cos(angle) - z*gomath.Sin(angle)),
		0.75,
		float32(x*gomath.Sin(angle) + z*gomath.Cos(angle)),
	}
	for axis := range want {
		if !approxEqual(got[axis], want[axis], 1e-5) {
			t.Fatalf("DeformVertex = %v, want %v", got, want)
		}
	}
}

func TestAdvanceNoDrift(t *testing.T) {
	d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))
	p := DefaultParameters()
	p.Twist = 1.2
	p.Elongation = 1.6

	first := d.Advance(0.5, p).Clone()
	for i := 0; i < 50; i++ {
		out := d.Advance(0, p)
		for j := range first.Positions {
			if out.Positions[j] != first.Positions[j] {
				t.Fatalf("repeat %d: vertex %d drifted %v -> %v", i, j, first.Positions[j], out.Positions[j])
			}
		}
	}
}

func TestAdvanceLeavesBaseUntouched(t *testing.T) {
	base := mesh.BuildSphere(1, 12, 8)
	want := base.Clone()
	d := NewPetalDeformer(base, noise.NewSimplex(noise.DefaultSeed))

	p := DefaultParameters()
	p.Twist, p.Elongation, p.Compression = 2, 2, 0.5
	for i := 0; i < 10; i++ {
		d.Advance(0.1, p)
	}

	for i := range want.Positions {
		if base.Positions[i] != want.Positions[i] || base.Normals[i] != want.Normals[i] {
			t.Fatalf("base vertex %d modified", i)
		}
	}
}

func TestAdvancePhase(t *testing.T) {
	d := newTestDeformer(noise.Zero{})
	p := DefaultParameters()
	p.NoiseSpeed = 2

	d.Advance(0.25, p)
	if got := d.Phase(); !approxEqual(float32(got), 0.5, 1e-6) {
		t.Fatalf("phase = %v, want 0.5", got)
	}

	for _, dt := range []float32{-1, nan, 0} {
		d.Advance(dt, p)
		if got := d.Phase(); !approxEqual(float32(got), 0.5, 1e-6) {
			t.Errorf("dt %v changed phase to %v", dt, got)
		}
	}

	p.NoiseSpeed = 0
	d.Advance(10, p)
	if got := d.Phase(); !approxEqual(float32(got), 0.5, 1e-6) {
		t.Errorf("zero speed changed phase to %v", got)
	}
}

func TestAdvanceSamePhaseSameShape(t *testing.T) {
	field := noise.NewSimplex(noise.DefaultSeed)
	a := newTestDeformer(field)
	b := newTestDeformer(field)
	p := DefaultParameters()

	ma := a.Advance(0.3, p)
	mb := b.Advance(0.3, p)
	for i := range ma.Positions {
		if ma.Positions[i] != mb.Positions[i] {
			t.Fatalf("vertex %d differs between deformers at equal phase", i)
		}
	}
}

func TestAdvanceMinimumBoundsFinite(t *testing.T) {
	d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))
	p := ShapeParameters{PetalCount: 1, PetalSize: 0.5, Elongation: 0.5, Compression: 0.5, Twist: 2, NoiseScale: 5, NoiseSpeed: 2}

	for frame := 0; frame < 10; frame++ {
		out := d.Advance(0.05, p)
		for i := range out.Positions {
			if !math.V3(out.Positions[i]).IsFinite() {
				t.Fatalf("frame %d vertex %d not finite: %v", frame, i, out.Positions[i])
			}
			n := math.V3(out.Normals[i])
			if !n.IsFinite() || !approxEqual(n.Length(), 1, 1e-4) {
				t.Fatalf("frame %d normal %d invalid: %v", frame, i, out.Normals[i])
			}
		}
	}

	// Non-degenerate: the petal still has volume.
	size := d.Advance(0, p).Bounds().Size()
	for axis, s := range size {
		if s <= 0.1 {
			t.Errorf("axis %d collapsed to %v", axis, s)
		}
	}
}

func TestAdvanceDegenerateDoesNotPanic(t *testing.T) {
	d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))

	for _, p := range []ShapeParameters{
		{Elongation: 0, Compression: 0, NoiseScale: 1, NoiseSpeed: 1},
		{Elongation: -1, Compression: -3, Twist: 5, NoiseScale: 1, NoiseSpeed: 1},
	} {
		out := d.Advance(0.1, p)
		for i := range out.Positions {
			if !math.V3(out.Positions[i]).IsFinite() || !math.V3(out.Normals[i]).IsFinite() {
				t.Fatalf("degenerate parameters produced non-finite vertex %d", i)
			}
		}
	}
}

func TestAdvanceExtremeParametersStayFinite(t *testing.T) {
	base := DefaultParameters()
	tests := []struct {
		name string
		edit func(p *ShapeParameters)
	}{
		{"huge elongation and twist", func(p *ShapeParameters) { p.Elongation, p.Twist = 1e20, 1e20 }},
		{"max float elongation", func(p *ShapeParameters) { p.Elongation = gomath.MaxFloat32 }},
		{"max float compression", func(p *ShapeParameters) { p.Compression = -gomath.MaxFloat32 }},
		{"huge twist only", func(p *ShapeParameters) { p.Twist = 1e30 }},
		{"huge noise scale", func(p *ShapeParameters) { p.NoiseScale = gomath.MaxFloat32 }},
		{"everything huge", func(p *ShapeParameters) {
			p.Elongation, p.Compression, p.Twist = 1e38, 1e38, -1e38
			p.NoiseScale, p.NoiseSpeed = 1e38, 1e38
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.edit(&p)
			d := newTestDeformer(noise.NewSimplex(noise.DefaultSeed))

			for frame := 0; frame < 3; frame++ {
				out := d.Advance(0.016, p)
				for i := range out.Positions {
					if !math.V3(out.Positions[i]).IsFinite() {
						t.Fatalf("frame %d vertex %d not finite: %v", frame, i, out.Positions[i])
					}
					if n := math.V3(out.Normals[i]); !n.IsFinite() || !approxEqual(n.Length(), 1, 1e-4) {
						t.Fatalf("frame %d normal %d invalid: %v", frame, i, out.Normals[i])
					}
				}
			}
		})
	}
}

func TestTwistOverflowLeavesPointUnrotated(t *testing.T) {
	xz := math.Vec2{X: 0.5, Y: -0.25}
	if got := Twist(xz, 1e20, 1e20); got != xz {
		t.Errorf("Twist with overflowing angle = %v, want %v", got, xz)
	}
}

func TestNewPetalDeformerNilField(t *testing.T) {
	d := NewPetalDeformer(mesh.BuildSphere(1, 6, 4), nil)
	out := d.Advance(1, neutralParameters())
	if out.VertexCount() != d.VertexCount() {
		t.Fatalf("unexpected vertex count %d", out.VertexCount())
	}
}
