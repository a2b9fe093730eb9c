package lighting

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		sun      Sun
		expected [3]float32
	}{
		{"overhead", Sun{Longitude: 0, Latitude: 90}, [3]float32{0, 1, 0}},
		{"front horizon", Sun{Longitude: 0, Latitude: 0}, [3]float32{0, 0, 1}},
		{"right horizon", Sun{Longitude: 90, Latitude: 0}, [3]float32{1, 0, 0}},
		{"diagonal", Sun{Longitude: 45, Latitude: 45}, [3]float32{0.5, 0.70710677, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.ToSun().Array()
			for i := range got {
				if math32.Abs(got[i]-tt.expected[i]) > 1e-5 {
					t.Errorf("ToSun() = %v, want %v", got, tt.expected)
					break
				}
			}

			d := tt.sun.Direction()
			if math32.Abs(d.Length()-1) > 1e-5 {
				t.Errorf("direction not normalized: %v", d)
			}
			if d.Dot(tt.sun.ToSun()) > -0.999 {
				t.Errorf("direction %v should point away from the sun", d)
			}
		})
	}
}

func TestClampedAmbient(t *testing.T) {
	tests := []struct {
		ambient, want float32
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		if got := (Sun{Ambient: tt.ambient}).ClampedAmbient(); got != tt.want {
			t.Errorf("ambient %f: expected %f, got %f", tt.ambient, tt.want, got)
		}
	}
}
