package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PulseTrain places a triangular pulse of the given half-width and height
// every period samples, starting at offset. Samples outside the pulses are 0.
// The apex of each pulse is the only sample at full height.
func PulseTrain(length, period, offset, halfWidth int, height float64) []float64 {
	out := make([]float64, length)
	if period <= 0 || halfWidth < 0 {
		return out
	}
	for c := offset; c < length; c += period {
		for k := -halfWidth; k <= halfWidth; k++ {
			i := c + k
			if i < 0 || i >= length {
				continue
			}
			v := height * (1 - math.Abs(float64(k))/float64(halfWidth+1))
			if v > out[i] {
				out[i] = v
			}
		}
	}
	return out
}

// Ramp generates start, start+step, start+2*step, ...
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
