// Package oscillator provides the fundamental generator unit of audio
// synthesis.
package oscillator

import (
	"math"
	"math/rand"
	"time"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/envelope"
	"github.com/dudk/dspgraph/signal"
)

// Waveform selects the shape the oscillator iterates.
type Waveform int

// Supported waveforms.
const (
	Sine Waveform = iota
	Saw
	Square
	Noise
	NoiseWalk
)

// Oscillator is a generator unit producing the same waveform on all
// channels. It ignores its inputs.
//
// Oscillator is not safe for concurrent use: change its parameters
// through the graph mutation protocol.
type Oscillator struct {
	dspgraph.UID
	waveform  Waveform
	frequency float64
	amplitude float64
	phase     float64
	walk      float64
	elapsed   int
	amp       *envelope.Envelope
	random    *rand.Rand
}

// Option provides a way to set functional parameters to oscillator.
type Option func(o *Oscillator)

// WithAmplitudeEnvelope shapes the amplitude over the oscillator
// lifetime, envelope time is measured in seconds.
func WithAmplitudeEnvelope(e *envelope.Envelope) Option {
	return func(o *Oscillator) {
		o.amp = e
	}
}

// New returns a new oscillator.
func New(waveform Waveform, frequency, amplitude float64, options ...Option) *Oscillator {
	o := &Oscillator{
		UID:       dspgraph.NewUID(),
		waveform:  waveform,
		frequency: frequency,
		amplitude: amplitude,
		random:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// SetWaveform sets the waveform used for phase iteration.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w
}

// SetFrequency sets the oscillation frequency in Hz.
func (o *Oscillator) SetFrequency(hz float64) {
	o.frequency = hz
}

// SetAmplitude sets the peak amplitude.
func (o *Oscillator) SetAmplitude(amplitude float64) {
	o.amplitude = amplitude
}

// Process writes the next settings.Frames samples of the waveform.
func (o *Oscillator) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	for i := 0; i < settings.Frames && i < out.Size(); i++ {
		amplitude := o.amplitude
		if o.amp != nil {
			at := float64(o.elapsed) / float64(settings.SampleRate)
			amplitude *= o.amp.At(at)
		}
		value := amplitude * o.value()
		for c := range out {
			out[c][i] = value
		}
		o.advance(settings.SampleRate)
	}
	return nil
}

// value returns the waveform value for the current phase.
func (o *Oscillator) value() float64 {
	switch o.waveform {
	case Sine:
		return math.Sin(2 * math.Pi * o.phase)
	case Saw:
		return 2*o.phase - 1
	case Square:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	case Noise:
		return o.random.Float64()*2 - 1
	case NoiseWalk:
		o.walk += (o.random.Float64()*2 - 1) * 0.1
		if o.walk > 1 {
			o.walk = 1
		}
		if o.walk < -1 {
			o.walk = -1
		}
		return o.walk
	}
	return 0
}

// advance iterates the phase according to frequency.
func (o *Oscillator) advance(sampleRate int) {
	o.elapsed++
	o.phase += o.frequency / float64(sampleRate)
	for o.phase >= 1 {
		o.phase--
	}
}
