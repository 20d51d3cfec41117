package oscillator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/envelope"
	"github.com/dudk/dspgraph/oscillator"
	"github.com/dudk/dspgraph/signal"
)

func TestSine(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 8, Frames: 8, Channels: 2}
	// two full periods per buffer
	o := oscillator.New(oscillator.Sine, 2, 1)

	out := signal.EmptyFloat64(2, 8)
	require.Nil(t, o.Process(out, nil, settings))

	expected := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	for i, val := range expected {
		assert.InDelta(t, val, out[0][i], 1e-9)
		// all channels carry the same signal
		assert.Equal(t, out[0][i], out[1][i])
	}
}

func TestSquare(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 4, Frames: 4, Channels: 1}
	o := oscillator.New(oscillator.Square, 1, 0.5)

	out := signal.EmptyFloat64(1, 4)
	require.Nil(t, o.Process(out, nil, settings))
	assert.Equal(t, signal.Float64{{0.5, 0.5, -0.5, -0.5}}, out)
}

func TestSaw(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 4, Frames: 4, Channels: 1}
	o := oscillator.New(oscillator.Saw, 1, 1)

	out := signal.EmptyFloat64(1, 4)
	require.Nil(t, o.Process(out, nil, settings))
	assert.Equal(t, signal.Float64{{-1, -0.5, 0, 0.5}}, out)
}

func TestNoiseBounded(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 256, Channels: 1}
	for _, w := range []oscillator.Waveform{oscillator.Noise, oscillator.NoiseWalk} {
		o := oscillator.New(w, 440, 1)
		out := signal.EmptyFloat64(1, 256)
		require.Nil(t, o.Process(out, nil, settings))
		for _, val := range out[0] {
			assert.True(t, val >= -1 && val <= 1)
		}
	}
}

func TestAmplitudeEnvelope(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 4, Frames: 4, Channels: 1}
	env := envelope.New(
		envelope.Point{Time: 0, Value: 0},
		envelope.Point{Time: 1, Value: 1},
	)
	o := oscillator.New(oscillator.Square, 0, 1, oscillator.WithAmplitudeEnvelope(env))

	out := signal.EmptyFloat64(1, 4)
	require.Nil(t, o.Process(out, nil, settings))

	// square at zero frequency holds 1, the envelope ramps it up
	assert.Equal(t, signal.Float64{{0, 0.25, 0.5, 0.75}}, out)
}
