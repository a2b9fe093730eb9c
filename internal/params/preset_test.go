package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/bloom/internal/flower"
)

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tulip.yaml")

	yamlContent := `
petal_count: 6
petal_size: 1.5
elongation: 1.8
compression: 0.7
twist: -0.5
noise_scale: 2
noise_speed: 0.25
color: "#ffcc00"
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("failed to load preset: %v", err)
	}

	if p.PetalCount != 6 {
		t.Errorf("expected 6 petals, got %d", p.PetalCount)
	}
	if p.PetalSize != 1.5 {
		t.Errorf("expected size 1.5, got %f", p.PetalSize)
	}
	if p.Elongation != 1.8 {
		t.Errorf("expected elongation 1.8, got %f", p.Elongation)
	}
	if p.Compression != 0.7 {
		t.Errorf("expected compression 0.7, got %f", p.Compression)
	}
	if p.Twist != -0.5 {
		t.Errorf("expected twist -0.5, got %f", p.Twist)
	}
	if p.NoiseScale != 2 || p.NoiseSpeed != 0.25 {
		t.Errorf("unexpected noise settings %f / %f", p.NoiseScale, p.NoiseSpeed)
	}
	if p.Color.Hex() != "#ffcc00" {
		t.Errorf("expected color #ffcc00, got %s", p.Color.Hex())
	}
}

func TestLoadPresetPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("twist: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("failed to load preset: %v", err)
	}

	want := flower.DefaultParameters()
	want.Twist = 1
	if p != want {
		t.Errorf("expected defaults with twist 1, got %+v", p)
	}
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty", content: "", wantErr: ErrEmptyPreset},
		{name: "comment only", content: "# nothing here\n", wantErr: ErrEmptyPreset},
		{name: "bad yaml", content: "petal_count: [1, 2\n"},
		{name: "bad type", content: "petal_count: many\n"},
		{name: "bad color", content: "color: \"#zzzzzz\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write preset: %v", err)
			}

			_, err := LoadPreset(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadPresetMissing(t *testing.T) {
	_, err := LoadPreset("/nonexistent/path/preset.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSavePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "preset.yaml")

	p := flower.DefaultParameters()
	p.PetalCount = 9
	p.Twist = 0.75
	p.Color = p.Color.ShiftHue(120)

	if err := SavePreset(path, p); err != nil {
		t.Fatalf("failed to save preset: %v", err)
	}

	loaded, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("failed to reload preset: %v", err)
	}

	if loaded.PetalCount != 9 || loaded.Twist != 0.75 {
		t.Errorf("unexpected reloaded preset %+v", loaded)
	}
	if loaded.Color.Hex() != p.Color.Hex() {
		t.Errorf("expected color %s, got %s", p.Color.Hex(), loaded.Color.Hex())
	}
}
