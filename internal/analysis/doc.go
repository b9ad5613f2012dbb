// Package analysis extracts acoustic-emission style statistics from the
// breakage history of a run.
//
// The package works on the cumulative broken-bond series a run records:
//
//   - [BreakRate]: per-frame break increments
//   - [Events]: contiguous bursts of breaking
//   - [PowerSpectrum]: one-sided spectrum of the break rate
//
// # Interpreting the spectrum
//
// Brittle failure arrives in bursts. A spectrum dominated by low
// frequencies means a few large cascades; a flat spectrum means scattered
// single-bond breaks.
//
//	rate := analysis.BreakRate(series.Broken)
//	spec := analysis.PowerSpectrum(rate, meta.FPS)
//	freq, _ := spec.Dominant()
package analysis
