package params

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bloom/internal/flower"
)

// ErrEmptyPreset is returned when a preset file holds no parameters.
var ErrEmptyPreset = errors.New("preset is empty")

// LoadPreset reads a YAML preset. Fields missing from the file keep their
// DefaultParameters values.
func LoadPreset(path string) (flower.ShapeParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return flower.ShapeParameters{}, err
	}
	return ParsePreset(data)
}

// ParsePreset decodes preset YAML.
func ParsePreset(data []byte) (flower.ShapeParameters, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return flower.ShapeParameters{}, fmt.Errorf("parsing preset: %w", err)
	}
	if len(node.Content) == 0 {
		return flower.ShapeParameters{}, ErrEmptyPreset
	}

	p := flower.DefaultParameters()
	if err := node.Decode(&p); err != nil {
		return flower.ShapeParameters{}, fmt.Errorf("decoding preset: %w", err)
	}
	return p, nil
}

// SavePreset writes p as YAML, creating the parent directory if needed.
func SavePreset(path string, p flower.ShapeParameters) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
