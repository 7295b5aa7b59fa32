package terrain

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseField is a seeded coherent noise source with values roughly in [-1, 1].
// Implementations hold no mutable state and are safe for concurrent use.
type NoiseField interface {
	Sample(x, y float64) float64
}

type NoiseKind string

const (
	NoisePerlin  NoiseKind = "perlin"
	NoiseSimplex NoiseKind = "simplex"
)

func ParseNoiseKind(raw string) (NoiseKind, error) {
	switch NoiseKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", NoisePerlin:
		return NoisePerlin, nil
	case NoiseSimplex:
		return NoiseSimplex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNoise, raw)
	}
}

func NewNoiseField(kind NoiseKind, seed int64) (NoiseField, error) {
	switch kind {
	case NoisePerlin, "":
		return NewPerlinField(seed), nil
	case NoiseSimplex:
		return NewSimplexField(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, kind)
	}
}

type PerlinField struct {
	noise *perlin.Perlin
	seed  int64
}

func NewPerlinField(seed int64) PerlinField {
	return PerlinField{noise: perlin.NewPerlin(2, 2, 3, seed), seed: seed}
}

func (f PerlinField) Sample(x, y float64) float64 {
	return f.noise.Noise2D(x, y)
}

func (f PerlinField) Seed() int64 {
	return f.seed
}

type SimplexField struct {
	noise opensimplex.Noise
	seed  int64
}

func NewSimplexField(seed int64) SimplexField {
	return SimplexField{noise: opensimplex.New(seed), seed: seed}
}

func (f SimplexField) Sample(x, y float64) float64 {
	return f.noise.Eval2(x, y)
}

func (f SimplexField) Seed() int64 {
	return f.seed
}
