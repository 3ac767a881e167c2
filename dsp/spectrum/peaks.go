package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-peak/dsp/peak"
	"github.com/cwbudde/algo-peak/dsp/window"
)

// minFFTSize keeps the one-sided spectrum long enough to hold interior bins.
const minFFTSize = 8

// Bin is a local maximum of a magnitude or power spectrum.
type Bin struct {
	Index     int
	Frequency float64
	// Value is |X[k]| or |X[k]|^2 depending on the configured Scale.
	Value float64
}

// Peaks tapers signal, zero-pads it to a power of two, and returns the local
// maxima of its one-sided spectrum using peak.Find with windowSize counted in
// bins.
//
// Frequency is Index * sampleRate / fftSize. An empty signal, a signal longer
// than MaxFFTSize, or a windowSize below 1 yields peak.ErrInvalidInput.
func Peaks(signal []float64, windowSize int, opts ...Option) ([]Bin, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectrum: %w: empty signal", peak.ErrInvalidInput)
	}
	if len(signal) > MaxFFTSize {
		return nil, fmt.Errorf("spectrum: %w: signal length %d exceeds %d", peak.ErrInvalidInput, len(signal), MaxFFTSize)
	}
	if windowSize < 1 {
		return nil, fmt.Errorf("spectrum: %w: window size must be >= 1: %d", peak.ErrInvalidInput, windowSize)
	}

	cfg := applyOptions(opts)
	fftSize := nextPowerOf2(max(len(signal), cfg.fftSize, minFFTSize))

	spec, err := oneSidedSpectrum(signal, fftSize, cfg)
	if err != nil {
		return nil, err
	}

	found, err := peak.Find(spec, windowSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	binHz := cfg.sampleRate / float64(fftSize)
	bins := make([]Bin, len(found))
	for i, p := range found {
		bins[i] = Bin{
			Index:     p.Index,
			Frequency: float64(p.Index) * binHz,
			Value:     p.Value,
		}
	}
	return bins, nil
}

// oneSidedSpectrum returns |X[k]| or |X[k]|^2 for k in [0, fftSize/2].
func oneSidedSpectrum(signal []float64, fftSize int, cfg config) ([]float64, error) {
	tapered := make([]float64, len(signal))
	copy(tapered, signal)
	window.Apply(cfg.taper.WindowType(), tapered, window.WithPeriodic())

	in := make([]complex128, fftSize)
	for i, x := range tapered {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := out[:fftSize/2+1]
	if cfg.scale == ScalePower {
		return Power(half), nil
	}
	return Magnitude(half), nil
}

// nextPowerOf2 returns the smallest power of two >= n, saturating at the
// largest representable power of two.
func nextPowerOf2(n int) int {
	p := 1
	for p < n && p <= math.MaxInt>>1 {
		p <<= 1
	}
	return p
}
