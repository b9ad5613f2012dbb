package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// burstDecay shrinks the crack envelope each sample, a few tens of ms to
// silence at 44.1kHz.
const burstDecay = 0.9992

// Bare fifth, G2 and D3. Low enough to sit under the cracks.
var droneFreqs = []float64{98.00, 146.83}

// Processor turns breakage into sound. Every reported bond break fires a
// short noise burst, and the kinetic energy of the scene opens a low pass
// filter over a quiet drone. Output only; the physics loop feeds it through
// ReportBreaks and SetEnergy.
type Processor struct {
	Stream *portaudio.Stream

	// Synthesis
	Time        float64
	FilterState [2]float64   // Stereo LPF state
	DelayLine   [2][]float64 // Stereo Delay Buffer
	DelayHead   int
	burstEnv    float64

	// Physics Inputs
	mu            sync.Mutex
	pendingBreaks int
	totalEnergy   float64
	EnergySmooth  float64 // For slow morphing

	Active bool
}

func NewProcessor() *Processor {
	// 0.25 second delay, room-sized slap for the cracks
	delayLen := int(float64(SampleRate) * 0.25)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	portaudio.Initialize()

	// Output Only (0 In, 2 Out)
	// Duplex (1, 2) often fails on Linux if devices differ
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// ReportBreaks queues n bond breaks for sonification in the next buffer.
func (a *Processor) ReportBreaks(n int) {
	if n <= 0 {
		return
	}
	a.mu.Lock()
	a.pendingBreaks += n
	a.mu.Unlock()
}

// SetEnergy feeds the current kinetic energy of the scene.
func (a *Processor) SetEnergy(e float64) {
	a.mu.Lock()
	a.totalEnergy = e
	a.mu.Unlock()
}

// Triangle Wave: smooth, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	breaks := a.pendingBreaks
	a.pendingBreaks = 0
	targetEnergy := a.totalEnergy
	a.mu.Unlock()

	// Simultaneous breaks stack into a louder crack, capped so a cascade
	// does not clip.
	if breaks > 0 {
		a.burstEnv += math.Min(float64(breaks)*0.25, 1.5)
		if a.burstEnv > 2.0 {
			a.burstEnv = 2.0
		}
	}

	// Slow Morphing of Energy to prevent jumps
	a.EnergySmooth = a.EnergySmooth*0.995 + targetEnergy*0.005

	// Dynamic Cutoff: energy opens the filter
	// Base: 200Hz (at rest) -> Max: 2kHz
	cutoff := 200.0 + math.Min(a.EnergySmooth*400.0, 1800.0)
	dt := 1.0 / float64(SampleRate)

	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		// Quiet drone under everything, breathing on a slow LFO
		drone := 0.0
		for j, f := range droneFreqs {
			lfo := math.Sin(a.Time*0.2 + float64(j))
			drone += triangle(a.Time*f) * (0.7 + 0.3*lfo)
		}
		drone *= 0.2 / float64(len(droneFreqs))

		// Cracks: white noise through the decaying burst envelope,
		// independent per channel for stereo width
		crackL, crackR := 0.0, 0.0
		if a.burstEnv > 1e-4 {
			crackL = (rand.Float64()*2 - 1) * a.burstEnv
			crackR = (rand.Float64()*2 - 1) * a.burstEnv
			a.burstEnv *= burstDecay
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(drone+crackL, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(drone+crackR, cutoff, dt, a.FilterState[1])

		// Delay with Feedback Cross-Talk (Ping Pong)
		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.5
		a.DelayLine[1][a.DelayHead] = mixR * 0.5

		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}
}
