package spectrum

import (
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/cwbudde/algo-peak/dsp/peak"
	"github.com/cwbudde/algo-peak/dsp/window"
	"github.com/cwbudde/algo-peak/internal/testutil"
)

// strongest returns the bins sorted by descending magnitude, truncated to k.
func strongest(bins []Bin, k int) []Bin {
	out := append([]Bin(nil), bins...)
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func TestPeaksSingleTone(t *testing.T) {
	const (
		n    = 1024
		rate = 1024.0
	)
	signal := testutil.DeterministicSine(100, rate, 1, n)

	tests := []struct {
		taper   Taper
		wantMag float64
	}{
		{TaperHann, n / 4},
		{TaperRectangular, n / 2},
	}

	for _, tt := range tests {
		t.Run(tt.taper.String(), func(t *testing.T) {
			bins, err := Peaks(signal, 5, WithSampleRate(rate), WithTaper(tt.taper))
			if err != nil {
				t.Fatalf("Peaks() error = %v", err)
			}
			top := strongest(bins, 1)
			if len(top) != 1 {
				t.Fatal("no peaks found")
			}
			if top[0].Index != 100 {
				t.Fatalf("strongest bin = %d, want 100", top[0].Index)
			}
			if math.Abs(top[0].Frequency-100) > 1e-9 {
				t.Fatalf("frequency = %f, want 100", top[0].Frequency)
			}
			if math.Abs(top[0].Value-tt.wantMag) > 1e-6 {
				t.Fatalf("magnitude = %f, want %f", top[0].Value, tt.wantMag)
			}
		})
	}
}

func TestPeaksTwoTones(t *testing.T) {
	const rate = 1024.0
	a := testutil.DeterministicSine(50, rate, 1, 1024)
	b := testutil.DeterministicSine(200, rate, 0.5, 1024)
	signal := make([]float64, len(a))
	for i := range signal {
		signal[i] = a[i] + b[i]
	}

	bins, err := Peaks(signal, 9, WithSampleRate(rate))
	if err != nil {
		t.Fatal(err)
	}

	top := strongest(bins, 2)
	if len(top) != 2 || top[0].Index != 50 || top[1].Index != 200 {
		t.Fatalf("strongest bins = %+v, want 50 then 200", top)
	}

	for i := 1; i < len(bins); i++ {
		if bins[i].Index <= bins[i-1].Index {
			t.Fatalf("bins not in increasing order: %+v", bins)
		}
	}
}

func TestPeaksZeroPadding(t *testing.T) {
	const rate = 1024.0
	signal := testutil.DeterministicSine(100, rate, 1, 1024)

	bins, err := Peaks(signal, 5, WithSampleRate(rate), WithFFTSize(4096))
	if err != nil {
		t.Fatal(err)
	}
	top := strongest(bins, 1)
	if len(top) != 1 || top[0].Index != 400 {
		t.Fatalf("strongest = %+v, want bin 400", top)
	}
	if math.Abs(top[0].Frequency-100) > 1e-9 {
		t.Fatalf("frequency = %f, want 100", top[0].Frequency)
	}
}

func TestPeaksNonPowerOfTwoLength(t *testing.T) {
	// 1000 samples pad to 1024; a tone at 1/8 cycles per sample lands on bin 128.
	signal := testutil.DeterministicSine(1, 8, 1, 1000)

	bins, err := Peaks(signal, 3)
	if err != nil {
		t.Fatal(err)
	}
	top := strongest(bins, 1)
	if len(top) != 1 || top[0].Index != 128 {
		t.Fatalf("strongest = %+v, want bin 128", top)
	}
	if math.Abs(top[0].Frequency-0.125) > 1e-12 {
		t.Fatalf("frequency = %f, want 0.125", top[0].Frequency)
	}
}

func TestPeaksInvalidInput(t *testing.T) {
	if _, err := Peaks(nil, 3); !errors.Is(err, peak.ErrInvalidInput) {
		t.Fatalf("Peaks(nil) error = %v, want ErrInvalidInput", err)
	}
	if _, err := Peaks([]float64{1, 2, 3}, 0); !errors.Is(err, peak.ErrInvalidInput) {
		t.Fatalf("Peaks(ws=0) error = %v, want ErrInvalidInput", err)
	}
}

func TestPeaksPowerScale(t *testing.T) {
	const rate = 1024.0
	signal := testutil.DeterministicSine(100, rate, 1, 1024)

	mag, err := Peaks(signal, 5, WithSampleRate(rate), WithTaper(TaperRectangular))
	if err != nil {
		t.Fatal(err)
	}
	pow, err := Peaks(signal, 5, WithSampleRate(rate), WithTaper(TaperRectangular), WithScale(ScalePower))
	if err != nil {
		t.Fatal(err)
	}

	topMag := strongest(mag, 1)
	topPow := strongest(pow, 1)
	if topPow[0].Index != topMag[0].Index || topPow[0].Index != 100 {
		t.Fatalf("power peak %+v, magnitude peak %+v, want bin 100", topPow[0], topMag[0])
	}
	if math.Abs(topPow[0].Value-512*512) > 1e-3 {
		t.Fatalf("power = %f, want %f", topPow[0].Value, 512.0*512.0)
	}
}

func TestPeaksTapers(t *testing.T) {
	const rate = 1024.0
	signal := testutil.DeterministicSine(100, rate, 1, 1024)

	for _, name := range TaperNames() {
		taper, err := ParseTaper(name)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(name, func(t *testing.T) {
			bins, err := Peaks(signal, 5, WithSampleRate(rate), WithTaper(taper))
			if err != nil {
				t.Fatal(err)
			}
			want := 512 * window.Info(taper.WindowType()).CoherentGain
			top := strongest(bins, 1)
			if len(top) != 1 || top[0].Index != 100 {
				t.Fatalf("strongest = %+v, want bin 100", top)
			}
			if math.Abs(top[0].Value-want) > 1e-6 {
				t.Fatalf("magnitude = %f, want %f", top[0].Value, want)
			}
		})
	}
}

func TestPeaksHugeFFTSizeIgnored(t *testing.T) {
	done := make(chan []Bin, 1)
	go func() {
		bins, err := Peaks([]float64{1, 2, 3, 2, 1}, 3, WithFFTSize(math.MaxInt))
		if err != nil {
			t.Error(err)
		}
		done <- bins
	}()

	select {
	case bins := <-done:
		for _, b := range bins {
			// Falls back to the minimum transform: 8 points, bins 0..4.
			if b.Index < 1 || b.Index > 3 {
				t.Fatalf("bin %d outside an 8-point one-sided spectrum", b.Index)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Peaks did not return with an oversized FFT size")
	}

	for _, size := range []int{MaxFFTSize + 1, 1 << 40, math.MaxInt} {
		if cfg := applyOptions([]Option{WithFFTSize(size)}); cfg.fftSize != 0 {
			t.Fatalf("WithFFTSize(%d) accepted: %d", size, cfg.fftSize)
		}
	}
	if cfg := applyOptions([]Option{WithFFTSize(MaxFFTSize)}); cfg.fftSize != MaxFFTSize {
		t.Fatalf("WithFFTSize(MaxFFTSize) rejected")
	}
}

func TestPeaksShortSignal(t *testing.T) {
	// One sample under a periodic Hann taper is zeroed: flat spectrum, no peaks.
	bins, err := Peaks([]float64{5}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if bins == nil || len(bins) != 0 {
		t.Fatalf("Peaks(len 1) = %#v, want empty", bins)
	}

	// An impulse at the origin has a flat magnitude spectrum.
	bins, err = Peaks([]float64{1, 0, 0}, 3, WithTaper(TaperRectangular))
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 0 {
		t.Fatalf("Peaks(impulse) = %+v, want empty", bins)
	}
}

func TestNextPowerOf2(t *testing.T) {
	for _, tt := range []struct{ in, want int }{
		{1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1024, 1024},
		{math.MaxInt, 1 << 62},
	} {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
