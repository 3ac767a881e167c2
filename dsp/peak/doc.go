// Package peak locates local maxima in one-dimensional signals.
//
// A sample is a peak when it strictly exceeds every other sample inside a
// centered window of odd length. Window positions that fall outside the
// signal are omitted from the comparison, and the first and last samples are
// never reported.
//
// The functions in this package are pure and safe for concurrent use.
package peak
