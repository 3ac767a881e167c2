package peak

import "math"

// MinWindowSize is the smallest window the finder operates with.
const MinWindowSize = 3

// Peak is a strict local maximum of a signal.
type Peak struct {
	Index int
	Value float64
}

// NormalizeWindowSize maps a requested window size onto the one used for a
// signal of length n: clamped to n, rounded up to odd, then raised to at
// least MinWindowSize.
func NormalizeWindowSize(n, windowSize int) int {
	if windowSize > n {
		windowSize = n
	}
	if windowSize%2 == 0 {
		windowSize++
	}
	if windowSize < MinWindowSize {
		windowSize = MinWindowSize
	}
	return windowSize
}

// Find returns the strict local maxima of signal in increasing index order.
//
// Sample i is a peak when signal[i] is greater than every other sample in
// [i-half, i+half], where half is NormalizeWindowSize(len(signal), windowSize)/2.
// Neighbors outside the signal and NaN neighbors take no part in the
// comparison; a NaN sample is never a peak. Indices 0 and len(signal)-1 are
// never reported.
//
// The result is empty, not nil, when no peak exists. An empty signal or a
// windowSize below 1 yields ErrInvalidInput.
func Find(signal []float64, windowSize int) ([]Peak, error) {
	n := len(signal)
	if err := validate(n, windowSize); err != nil {
		return nil, err
	}

	half := NormalizeWindowSize(n, windowSize) / 2
	peaks := make([]Peak, 0)

	for i := 1; i < n-1; i++ {
		center := signal[i]
		if center > neighborMax(signal, i, half) {
			peaks = append(peaks, Peak{Index: i, Value: center})
		}
	}

	return peaks, nil
}

// neighborMax returns the largest non-NaN sample in [i-half, i+half] \ {i},
// clipped to the signal bounds, or -Inf if there is none.
func neighborMax(signal []float64, i, half int) float64 {
	lo := max(i-half, 0)
	hi := min(i+half, len(signal)-1)

	m := math.Inf(-1)
	for j := lo; j <= hi; j++ {
		if j == i {
			continue
		}
		// NaN > m is false, so NaN neighbors are skipped.
		if v := signal[j]; v > m {
			m = v
		}
	}
	return m
}

// FindIndices is like Find but returns only the peak indices.
func FindIndices(signal []float64, windowSize int) ([]int, error) {
	peaks, err := Find(signal, windowSize)
	if err != nil {
		return nil, err
	}
	return Indices(peaks), nil
}

// Indices returns the index column of peaks.
func Indices(peaks []Peak) []int {
	out := make([]int, len(peaks))
	for i, p := range peaks {
		out[i] = p.Index
	}
	return out
}

// Values returns the value column of peaks.
func Values(peaks []Peak) []float64 {
	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.Value
	}
	return out
}

// Matrix returns peaks as rows of [index, value].
func Matrix(peaks []Peak) [][2]float64 {
	out := make([][2]float64, len(peaks))
	for i, p := range peaks {
		out[i] = [2]float64{float64(p.Index), p.Value}
	}
	return out
}
