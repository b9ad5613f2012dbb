package analysis

import (
	"math"
	"testing"
)

func TestBreakRate(t *testing.T) {
	rate := BreakRate([]int{0, 0, 3, 3, 10})
	want := []float64{0, 3, 0, 7}

	if len(rate) != len(want) {
		t.Fatalf("expected %d increments, got %d", len(want), len(rate))
	}
	for i := range want {
		if rate[i] != want[i] {
			t.Errorf("increment %d: expected %g, got %g", i, want[i], rate[i])
		}
	}

	if BreakRate([]int{5}) != nil {
		t.Error("expected nil for a single sample")
	}
}

func TestEvents(t *testing.T) {
	events := Events([]float64{0, 2, 1, 0, 0, 5, 0})

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Start != 1 || events[0].Frames != 2 || events[0].Breaks != 3 {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Start != 5 || events[1].Frames != 1 || events[1].Breaks != 5 {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

func TestEventsTrailingBurst(t *testing.T) {
	events := Events([]float64{0, 0, 4, 4})

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Start != 2 || events[0].Frames != 2 || events[0].Breaks != 8 {
		t.Errorf("unexpected event %+v", events[0])
	}

	if len(Events([]float64{0, 0, 0})) != 0 {
		t.Error("expected no events for a quiet series")
	}
}

func TestPowerSpectrumConstant(t *testing.T) {
	data := make([]float64, 8)
	for i := range data {
		data[i] = 2.0
	}

	s := PowerSpectrum(data, 8)
	if len(s.Freqs) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(s.Freqs))
	}
	if s.Freqs[0] != 0 {
		t.Errorf("expected DC bin first, got %g", s.Freqs[0])
	}
	if math.Abs(s.Power[0]-16) > 1e-9 {
		t.Errorf("expected DC power 16, got %g", s.Power[0])
	}
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > 1e-9 {
			t.Errorf("expected empty bin %d, got %g", i, s.Power[i])
		}
	}
}

func TestPowerSpectrumSine(t *testing.T) {
	const n = 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / n)
	}

	s := PowerSpectrum(data, n)
	freq, power := s.Dominant()

	if freq != 8 {
		t.Errorf("expected dominant frequency 8, got %g", freq)
	}
	if math.Abs(power-n/2) > 1e-6 {
		t.Errorf("expected amplitude %g, got %g", float64(n)/2, power)
	}
}

func TestDominantIgnoresDC(t *testing.T) {
	const n = 32
	data := make([]float64, n)
	for i := range data {
		data[i] = 100 + math.Sin(2*math.Pi*4*float64(i)/n)
	}

	freq, _ := PowerSpectrum(data, n).Dominant()
	if freq != 4 {
		t.Errorf("expected 4, got %g", freq)
	}
}

func TestPowerSpectrumShort(t *testing.T) {
	s := PowerSpectrum([]float64{1}, 60)
	if len(s.Freqs) != 0 {
		t.Error("expected empty spectrum")
	}
	if f, p := s.Dominant(); f != 0 || p != 0 {
		t.Error("expected zero dominant for empty spectrum")
	}
}
