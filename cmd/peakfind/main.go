// Command peakfind prints the local maxima of a numeric signal.
//
// Usage:
//
//	peakfind [flags] [file]
//
// Samples are read from file, or from stdin when no file is given, as numbers
// separated by whitespace or commas. Lines starting with '#' are ignored.
//
// Examples:
//
//	peakfind -window 5 gait.txt
//	echo "1 5 9 5 1" | peakfind
//	peakfind -spectrum -rate 100 -window 9 accel.csv
//	peakfind -spectrum -power -taper blackman accel.csv
//	peakfind -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-peak/dsp/peak"
	"github.com/cwbudde/algo-peak/dsp/spectrum"
)

func main() {
	windowSize := flag.Int("window", 3, "window length in samples (bins with -spectrum)")
	spectral := flag.Bool("spectrum", false, "find peaks in the magnitude spectrum instead of the signal")
	rate := flag.Float64("rate", 1, "sample rate used to report frequencies with -spectrum")
	fftSize := flag.Int("fft", 0, "minimum FFT size with -spectrum (rounded up to a power of two)")
	taperName := flag.String("taper", "hann", "analysis window with -spectrum")
	power := flag.Bool("power", false, "pick peaks on the power spectrum with -spectrum")
	list := flag.Bool("list", false, "list available tapers")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peakfind [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Prints strict local maxima of a signal read from file or stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  peakfind -window 5 gait.txt\n")
		fmt.Fprintf(os.Stderr, "  peakfind -spectrum -rate 100 -window 9 accel.csv\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "error: at most one input file expected, got %d\n", flag.NArg())
		os.Exit(1)
	}

	signal, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *spectral {
		taper, err := spectrum.ParseTaper(*taperName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v (use -list to see available)\n", err)
			os.Exit(1)
		}
		if *fftSize > spectrum.MaxFFTSize {
			fmt.Fprintf(os.Stderr, "error: -fft must be <= %d: %d\n", spectrum.MaxFFTSize, *fftSize)
			os.Exit(1)
		}
		scale := spectrum.ScaleMagnitude
		if *power {
			scale = spectrum.ScalePower
		}
		bins, err := spectrum.Peaks(signal, *windowSize,
			spectrum.WithSampleRate(*rate),
			spectrum.WithFFTSize(*fftSize),
			spectrum.WithTaper(taper),
			spectrum.WithScale(scale),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if err := printBins(os.Stdout, bins, scale); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	peaks, err := peak.Find(signal, *windowSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := printPeaks(os.Stdout, peaks); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	names := spectrum.TaperNames()
	sort.Strings(names)
	for _, n := range names {
		_, _ = fmt.Fprintln(w, n)
	}
}

func readInput(path string) ([]float64, error) {
	if path == "" || path == "-" {
		return parseSignal(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	signal, err := parseSignal(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return signal, nil
}

func printPeaks(w io.Writer, peaks []peak.Peak) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Index\tValue\n-----\t-----\n"); err != nil {
		return err
	}
	for _, p := range peaks {
		if _, err := fmt.Fprintf(tw, "%d\t%g\n", p.Index, p.Value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printBins(w io.Writer, bins []spectrum.Bin, scale spectrum.Scale) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	label := scale.String()
	rule := strings.Repeat("-", len(label))
	if _, err := fmt.Fprintf(tw, "Bin\tFrequency\t%s\n---\t---------\t%s\n", label, rule); err != nil {
		return err
	}
	for _, b := range bins {
		if _, err := fmt.Fprintf(tw, "%d\t%.4f\t%.6g\n", b.Index, b.Frequency, b.Value); err != nil {
			return err
		}
	}
	return tw.Flush()
}
