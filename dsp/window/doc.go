// Package window generates the analysis windows used to taper signals before
// spectral peak picking.
package window
