package renderer

import (
	"testing"
)

func TestInterleave(t *testing.T) {
	positions := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	normals := [][3]float32{{0, 0, 1}, {1, 0, 0}}

	got := interleave(nil, positions, normals)

	want := []float32{1, 2, 3, 0, 0, 1, 4, 5, 6, 1, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestInterleaveReusesBuffer(t *testing.T) {
	buf := make([]float32, 0, 64)
	positions := [][3]float32{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}
	normals := [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}}

	got := interleave(buf, positions, normals)
	if &got[0] != &buf[:1][0] {
		t.Error("expected interleave to reuse a large enough buffer")
	}
	if len(got) != 3*floatsPerVertex {
		t.Errorf("expected %d floats, got %d", 3*floatsPerVertex, len(got))
	}
}

func TestInterleaveMissingNormals(t *testing.T) {
	got := interleave(nil, [][3]float32{{1, 2, 3}}, nil)

	if got[3] != 0 || got[4] != 1 || got[5] != 0 {
		t.Errorf("expected +Y fallback normal, got %v", got[3:6])
	}
}
