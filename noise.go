package mold

import (
	"errors"

	"github.com/aquilax/go-perlin"
	"github.com/soypat/glgl/math/ms3"
)

// NoiseConfig configures a fractal Perlin noise field.
type NoiseConfig struct {
	Seed int64
	// Octaves is the number of noise layers summed.
	Octaves int
	// Frequency scales positions before sampling the noise.
	Frequency float32
	// Lacunarity is the frequency multiplier between octaves.
	Lacunarity float32
	// Persistence is the amplitude multiplier between octaves.
	Persistence float32
	// Amplitude scales the summed noise.
	Amplitude float32
	// Bias is added to the scaled noise. Negative bias grows the solid.
	Bias float32
	// Tint is the base color, modulated by the noise.
	Tint ms3.Vec
	// Epsilon is the central difference step for gradients. DefaultEpsilon if zero.
	Epsilon float32
}

// DefaultNoiseConfig returns the noise parameters of the cave demo.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:        1,
		Octaves:     2,
		Frequency:   0.07,
		Lacunarity:  1.7,
		Persistence: 0.8,
		Amplitude:   1,
		Bias:        -0.1,
		Tint:        ms3.Vec{X: 0.6, Y: 0.5, Z: 0.2},
		Epsilon:     DefaultEpsilon,
	}
}

type noise struct {
	p   *perlin.Perlin
	cfg NoiseConfig
}

// NewNoise returns a mold whose value is Amplitude*fbm(Frequency*p) + Bias.
func NewNoise(cfg NoiseConfig) (Mold, error) {
	switch {
	case cfg.Octaves <= 0:
		return nil, errors.New("noise octaves must be positive")
	case cfg.Frequency <= 0 || cfg.Lacunarity <= 0:
		return nil, errors.New("noise frequency and lacunarity must be positive")
	case cfg.Persistence <= 0:
		return nil, errors.New("noise persistence must be positive")
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	// go-perlin divides each octave by alpha.
	alpha := 1 / float64(cfg.Persistence)
	return &noise{
		p:   perlin.NewPerlin(alpha, float64(cfg.Lacunarity), int32(cfg.Octaves), cfg.Seed),
		cfg: cfg,
	}, nil
}

func (n *noise) fbm(p ms3.Vec, freq float32) float32 {
	return float32(n.p.Noise3D(float64(freq*p.X), float64(freq*p.Y), float64(freq*p.Z)))
}

func (n *noise) Value(p ms3.Vec) float32 {
	return n.cfg.Amplitude*n.fbm(p, n.cfg.Frequency) + n.cfg.Bias
}

func (n *noise) Gradient(p ms3.Vec) ms3.Vec {
	return CentralDifference(n.Value, p, n.cfg.Epsilon)
}

func (n *noise) Color(p ms3.Vec) ms3.Vec {
	return ms3.Scale(n.fbm(p, 2*n.cfg.Frequency)+1, n.cfg.Tint)
}
