package spectrum

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-peak/dsp/window"
)

// MaxFFTSize bounds the transform length. Larger WithFFTSize values are
// ignored and longer signals are rejected.
const MaxFFTSize = 1 << 24

// Taper selects the window applied to the signal before the FFT.
type Taper int

const (
	// TaperHann is a periodic Hann window (default).
	TaperHann Taper = iota
	// TaperRectangular leaves the signal untapered.
	TaperRectangular
	// TaperHamming is a periodic Hamming window.
	TaperHamming
	// TaperBlackman is a periodic Blackman window.
	TaperBlackman
)

type taperEntry struct {
	name  string
	taper Taper
	typ   window.Type
}

var taperRegistry = []taperEntry{
	{"hann", TaperHann, window.TypeHann},
	{"rectangular", TaperRectangular, window.TypeRectangular},
	{"hamming", TaperHamming, window.TypeHamming},
	{"blackman", TaperBlackman, window.TypeBlackman},
}

func lookupTaper(t Taper) (taperEntry, bool) {
	for _, e := range taperRegistry {
		if e.taper == t {
			return e, true
		}
	}
	return taperEntry{}, false
}

// String returns the lower-case taper name.
func (t Taper) String() string {
	if e, ok := lookupTaper(t); ok {
		return e.name
	}
	return fmt.Sprintf("Taper(%d)", int(t))
}

// WindowType returns the window function backing the taper.
func (t Taper) WindowType() window.Type {
	if e, ok := lookupTaper(t); ok {
		return e.typ
	}
	return window.TypeRectangular
}

// TaperNames lists the names accepted by ParseTaper.
func TaperNames() []string {
	names := make([]string, len(taperRegistry))
	for i, e := range taperRegistry {
		names[i] = e.name
	}
	return names
}

// ParseTaper resolves a taper by name, case-insensitively.
func ParseTaper(name string) (Taper, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, e := range taperRegistry {
		if e.name == key {
			return e.taper, nil
		}
	}
	return 0, fmt.Errorf("spectrum: unknown taper %q", name)
}

// Scale selects the spectrum peaks are picked from.
type Scale int

const (
	// ScaleMagnitude picks peaks on |X[k]| (default).
	ScaleMagnitude Scale = iota
	// ScalePower picks peaks on |X[k]|^2.
	ScalePower
)

// String returns the column label for the scale.
func (s Scale) String() string {
	if s == ScalePower {
		return "Power"
	}
	return "Magnitude"
}

// Option configures Peaks.
type Option func(*config)

type config struct {
	sampleRate float64
	fftSize    int
	taper      Taper
	scale      Scale
}

func defaultConfig() config {
	return config{
		sampleRate: 1,
		taper:      TaperHann,
		scale:      ScaleMagnitude,
	}
}

// WithSampleRate sets the sample rate used to convert bins to frequencies.
// The default of 1 reports frequencies in cycles per sample.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		if sampleRate > 0 {
			c.sampleRate = sampleRate
		}
	}
}

// WithFFTSize sets a minimum FFT size in (0, MaxFFTSize]. The size actually
// used is the next power of two covering both this value and the signal length.
func WithFFTSize(size int) Option {
	return func(c *config) {
		if size > 0 && size <= MaxFFTSize {
			c.fftSize = size
		}
	}
}

// WithTaper selects the analysis window.
func WithTaper(t Taper) Option {
	return func(c *config) {
		if _, ok := lookupTaper(t); ok {
			c.taper = t
		}
	}
}

// WithScale selects magnitude or power spectrum for peak picking.
func WithScale(s Scale) Option {
	return func(c *config) {
		if s == ScaleMagnitude || s == ScalePower {
			c.scale = s
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
