package flower

import (
	gomath "math"
	"testing"
)

func TestLayoutFivePetals(t *testing.T) {
	placements := Layout(5, 2)
	if len(placements) != 5 {
		t.Fatalf("expected 5 placements, got %d", len(placements))
	}

	wantDegrees := []float64{0, 72, 144, 216, 288}
	for i, pl := range placements {
		deg := float64(pl.Angle()) * 180 / gomath.Pi
		if gomath.Abs(deg-wantDegrees[i]) > 1e-3 {
			t.Errorf("petal %d: angle %f degrees, want %f", i, deg, wantDegrees[i])
		}

		// Ring radius is petalSize/2 = 1.
		wantX := float32(gomath.Cos(float64(pl.Angle())))
		wantY := float32(gomath.Sin(float64(pl.Angle())))
		if !approxEqual(pl.Position.X, wantX, 1e-5) || !approxEqual(pl.Position.Y, wantY, 1e-5) || pl.Position.Z != 0 {
			t.Errorf("petal %d: position %+v, want (%f, %f, 0)", i, pl.Position, wantX, wantY)
		}
		if !approxEqual(pl.Scale, 0.4, 1e-6) {
			t.Errorf("petal %d: scale %f, want 0.4", i, pl.Scale)
		}
	}
}

func TestLayoutSymmetry(t *testing.T) {
	for n := 1; n <= 20; n++ {
		placements := Layout(n, 3)
		if len(placements) != n {
			t.Fatalf("n=%d: got %d placements", n, len(placements))
		}
		if placements[0].Angle() != 0 {
			t.Errorf("n=%d: first angle %f, want 0", n, placements[0].Angle())
		}

		step := float32(2 * gomath.Pi / float64(n))
		for i := 0; i+1 < n; i++ {
			d := placements[i+1].Angle() - placements[i].Angle()
			if !approxEqual(d, step, 1e-5) {
				t.Errorf("n=%d: spacing between %d and %d is %f, want %f", n, i, i+1, d, step)
			}
		}
	}
}

func TestLayoutSinglePetal(t *testing.T) {
	placements := Layout(1, 4)
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	pl := placements[0]
	if pl.Angle() != 0 {
		t.Errorf("expected angle 0, got %f", pl.Angle())
	}
	if pl.Position.X != 2 || pl.Position.Y != 0 {
		t.Errorf("expected position (2, 0, 0), got %+v", pl.Position)
	}
}

func TestLayoutEmpty(t *testing.T) {
	if got := Layout(0, 1); len(got) != 0 {
		t.Errorf("expected no placements for count 0, got %d", len(got))
	}
	if got := Layout(-3, 1); len(got) != 0 {
		t.Errorf("expected no placements for negative count, got %d", len(got))
	}
}

func TestLayoutDeterministic(t *testing.T) {
	a := Layout(7, 1.3)
	b := Layout(7, 1.3)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("placement %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlacementModelMatrix(t *testing.T) {
	pl := Layout(4, 2)[1] // 90 degrees, position (0, 1, 0), scale 0.4

	m := pl.ModelMatrix()
	origin := m.TransformPoint([3]float32{})
	if !approxEqual(origin[0], pl.Position.X, 1e-6) || !approxEqual(origin[1], pl.Position.Y, 1e-6) {
		t.Errorf("origin maps to %v, want %+v", origin, pl.Position)
	}

	// The petal's local +X axis points along the ring direction.
	tip := m.TransformPoint([3]float32{1, 0, 0})
	if !approxEqual(tip[0], 0, 1e-5) || !approxEqual(tip[1], 1.4, 1e-5) {
		t.Errorf("local +X maps to %v, want (0, 1.4, 0)", tip)
	}
}
