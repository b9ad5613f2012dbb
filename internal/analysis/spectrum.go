package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// BreakRate differences a cumulative broken-bond series into per-frame
// break counts. The result is one shorter than the input.
func BreakRate(broken []int) []float64 {
	if len(broken) < 2 {
		return nil
	}
	rate := make([]float64, len(broken)-1)
	for i := 1; i < len(broken); i++ {
		rate[i-1] = float64(broken[i] - broken[i-1])
	}
	return rate
}

// Event is a contiguous burst of bond breaking.
type Event struct {
	Start  int // first breaking frame
	Frames int // burst length in frames
	Breaks int // bonds broken during the burst
}

// Events groups consecutive breaking frames into bursts.
func Events(rate []float64) []Event {
	events := make([]Event, 0)
	start := -1
	breaks := 0
	for i, r := range rate {
		if r > 0 {
			if start < 0 {
				start = i
			}
			breaks += int(r)
			continue
		}
		if start >= 0 {
			events = append(events, Event{Start: start, Frames: i - start, Breaks: breaks})
			start, breaks = -1, 0
		}
	}
	if start >= 0 {
		events = append(events, Event{Start: start, Frames: len(rate) - start, Breaks: breaks})
	}
	return events
}

// Spectrum is the one-sided amplitude spectrum of a uniformly sampled
// series, DC bin included.
type Spectrum struct {
	Freqs []float64 // Hz
	Power []float64
}

// PowerSpectrum transforms data sampled at rate samples per second. Any
// length works; lengths below two yield an empty spectrum.
func PowerSpectrum(data []float64, rate float64) *Spectrum {
	n := len(data)
	if n < 2 {
		return &Spectrum{}
	}

	spec := fft.FFTReal(data)
	half := n / 2

	s := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		s.Freqs[i] = float64(i) * rate / float64(n)
		s.Power[i] = cmplx.Abs(spec[i])
	}
	return s
}

// Dominant returns the strongest frequency, ignoring the DC bin.
func (s *Spectrum) Dominant() (freq, power float64) {
	for i := 1; i < len(s.Freqs); i++ {
		if s.Power[i] > power {
			freq, power = s.Freqs[i], s.Power[i]
		}
	}
	return freq, power
}
