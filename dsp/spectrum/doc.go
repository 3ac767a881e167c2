// Package spectrum provides magnitude and power helpers for complex spectra
// and picks local maxima from the magnitude or power spectrum of a real signal.
//
// Peak picking in the frequency domain reuses the time-domain finder of
// package peak, so bin selection follows the same window and boundary rules:
// the DC and Nyquist bins are never reported.
package spectrum
