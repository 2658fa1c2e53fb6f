package timeline

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// NoiseAmplitude bounds the per-entity growth perturbation to [-0.1, +0.1].
const NoiseAmplitude = 0.1

// Noise is the randomness source for growth perturbation. *rand.Rand satisfies it.
type Noise interface {
	Float64() float64
}

type fixedNoise float64

func (f fixedNoise) Float64() float64 { return float64(f) }

// FixedNoise returns a source that always draws v, where v is in [0,1).
func FixedNoise(v float64) Noise { return fixedNoise(v) }

// NoNoise draws the midpoint, which maps to a zero perturbation.
var NoNoise Noise = fixedNoise(0.5)

// perturbation maps one draw in [0,1) onto [-NoiseAmplitude, +NoiseAmplitude).
func perturbation(n Noise) float64 {
	if n == nil {
		return 0
	}
	return n.Float64()*2*NoiseAmplitude - NoiseAmplitude
}

// NewSeededRNG returns a deterministic generator for seed. A zero seed is
// replaced with one read from crypto/rand; the seed in use is returned so
// callers can report it for reproducibility.
func NewSeededRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(b[:]))
		}
		if seed == 0 {
			seed = 1
		}
	}
	return rand.New(rand.NewSource(seed)), seed
}
