// Package noise provides deterministic coherent 3D noise fields used to
// displace petal surfaces over time.
package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// DefaultSeed is the process-wide seed for every field built by New.
const DefaultSeed int64 = 0x5eed_f10e

// Backend names accepted by New.
const (
	BackendSimplex = "simplex"
	BackendPerlin  = "perlin"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown noise backend")

// Field is a coherent scalar field over 3D space.
// Sample is pure and continuous, returns values in about [-1, 1] and is
// safe for concurrent use.
type Field interface {
	Sample(x, y, z float64) float64
}

// New returns the named backend seeded with DefaultSeed.
// An empty name selects simplex.
func New(backend string) (Field, error) {
	return NewSeeded(backend, DefaultSeed)
}

// NewSeeded is New with an explicit seed.
func NewSeeded(backend string, seed int64) (Field, error) {
	switch backend {
	case "", BackendSimplex:
		return NewSimplex(seed), nil
	case BackendPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendSimplex, BackendPerlin}
}

// Simplex is an OpenSimplex field.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex field for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.New(seed)}
}

// Sample evaluates the field. Output is in [-1, 1].
func (s *Simplex) Sample(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

// Perlin is a classic gradient-noise field summed over a few octaves.
type Perlin struct {
	p *perlin.Perlin
}

// Perlin tuning: smoothing, frequency step and octave count.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NewPerlin creates a Perlin field for the given seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Sample evaluates the field, clamped to [-1, 1].
func (p *Perlin) Sample(x, y, z float64) float64 {
	return math.Max(-1, math.Min(1, p.p.Noise3D(x, y, z)))
}

// Zero is a field that is zero everywhere. Useful for isolating the
// geometric stages of a deformation.
type Zero struct{}

// Sample always returns 0.
func (Zero) Sample(_, _, _ float64) float64 { return 0 }

// Constant returns the same value everywhere.
type Constant float64

// Sample returns c.
func (c Constant) Sample(_, _, _ float64) float64 { return float64(c) }
