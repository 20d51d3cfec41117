package wav_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/graph"
	"github.com/dudk/dspgraph/mock"
	"github.com/dudk/dspgraph/signal"
	"github.com/dudk/dspgraph/wav"
)

func TestSinkSampler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 64, Channels: 2}

	g := graph.New()
	gen := g.AddNode(&mock.Generator{Value: 0.5})
	require.Nil(t, g.SetMaster(gen))

	sink, err := wav.NewSink(path, signal.BitDepth16)
	require.Nil(t, err)
	require.Nil(t, sink.Render(g, settings, 4))

	sampler, err := wav.NewSampler(path)
	require.Nil(t, err)
	assert.Equal(t, 44100, sampler.SampleRate())
	assert.Equal(t, 2, sampler.NumChannels())

	out := signal.EmptyFloat64(2, 64)
	require.Nil(t, sampler.Process(out, nil, settings))
	for i := range out {
		for _, val := range out[i] {
			assert.InDelta(t, 0.5, val, 1e-3)
		}
	}
}

func TestSamplerPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 16, Channels: 1}

	g := graph.New()
	require.Nil(t, g.SetMaster(g.AddNode(&mock.Generator{Value: 0.25})))

	sink, err := wav.NewSink(path, signal.BitDepth16)
	require.Nil(t, err)
	require.Nil(t, sink.Render(g, settings, 1))

	sampler, err := wav.NewSampler(path)
	require.Nil(t, err)

	out := signal.EmptyFloat64(1, 16)
	require.Nil(t, sampler.Process(out, nil, settings))
	// the file is drained, further processing yields silence
	require.Nil(t, sampler.Process(out, nil, settings))
	assert.Equal(t, signal.EmptyFloat64(1, 16), out)
}

func TestSamplerLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.wav")
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 16, Channels: 1}

	g := graph.New()
	require.Nil(t, g.SetMaster(g.AddNode(&mock.Generator{Value: 0.25})))

	sink, err := wav.NewSink(path, signal.BitDepth16)
	require.Nil(t, err)
	require.Nil(t, sink.Render(g, settings, 1))

	sampler, err := wav.NewSampler(path, wav.WithLoop())
	require.Nil(t, err)

	out := signal.EmptyFloat64(1, 16)
	require.Nil(t, sampler.Process(out, nil, settings))
	require.Nil(t, sampler.Process(out, nil, settings))
	for _, val := range out[0] {
		assert.InDelta(t, 0.25, val, 1e-3)
	}
}

func TestUnsupportedBitDepth(t *testing.T) {
	_, err := wav.NewSink("whatever.wav", signal.BitDepth8)
	assert.Equal(t, wav.ErrUnsupportedBitDepth, err)
}

func TestSamplerMissingFile(t *testing.T) {
	_, err := wav.NewSampler(filepath.Join(t.TempDir(), "missing.wav"))
	assert.NotNil(t, err)
}
