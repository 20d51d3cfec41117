package graph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/graph"
	"github.com/dudk/dspgraph/mock"
	"github.com/dudk/dspgraph/signal"
)

func TestRenderSum(t *testing.T) {
	tests := []struct {
		description string
		frames      int
		channels    int
	}{
		{
			description: "mono",
			frames:      64,
			channels:    1,
		},
		{
			description: "stereo",
			frames:      512,
			channels:    2,
		},
	}

	for _, test := range tests {
		g := graph.New()
		master := g.AddNode(&mock.Pass{})
		require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: 1}), master))
		require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: 2}), master))
		require.Nil(t, g.SetMaster(master))

		settings := dspgraph.Settings{
			SampleRate: 44100,
			Frames:     test.frames,
			Channels:   test.channels,
		}
		dst := signal.EmptyFloat64(test.channels, test.frames)
		require.Nil(t, g.Render(dst, settings), test.description)

		for i := range dst {
			for j := range dst[i] {
				assert.Equal(t, 3.0, dst[i][j], test.description)
			}
		}
	}
}

func TestRenderNoMaster(t *testing.T) {
	g := graph.New()
	g.AddNode(&mock.Generator{Value: 1})

	settings := dspgraph.CDQuality()
	dst := signal.EmptyFloat64(settings.Channels, settings.Frames)
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] = 9
		}
	}

	err := g.Render(dst, settings)
	assert.Equal(t, graph.ErrNoMaster, err)

	// destination is untouched on error
	for i := range dst {
		for j := range dst[i] {
			assert.Equal(t, 9.0, dst[i][j])
		}
	}
}

func TestRenderFrom(t *testing.T) {
	g := graph.New()
	gen := g.AddNode(&mock.Generator{Value: 0.5})

	settings := dspgraph.Settings{SampleRate: 44100, Frames: 16, Channels: 1}
	dst := signal.EmptyFloat64(1, 16)
	require.Nil(t, g.RenderFrom(gen, dst, settings))
	assert.Equal(t, 0.5, dst[0][0])

	require.Nil(t, g.RemoveNode(gen))
	assert.Equal(t, graph.ErrUnknownNode, g.RenderFrom(gen, dst, settings))
}

func TestDisconnectedNotVisited(t *testing.T) {
	g := graph.New()
	master := g.AddNode(&mock.Pass{})
	require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: 1}), master))
	require.Nil(t, g.SetMaster(master))

	disconnected := &mock.Counter{}
	g.AddNode(disconnected)

	settings := dspgraph.Settings{SampleRate: 44100, Frames: 16, Channels: 1}
	dst := signal.EmptyFloat64(1, 16)
	require.Nil(t, g.Render(dst, settings))
	require.Nil(t, g.Render(dst, settings))

	assert.Equal(t, 0, disconnected.Processed)
}

func TestOrderSensitivity(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 8, Channels: 1}

	render := func(first, second float64) signal.Float64 {
		g := graph.New()
		sub := g.AddNode(&mock.Subtractor{})
		require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: first}), sub))
		require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: second}), sub))
		require.Nil(t, g.SetMaster(sub))
		dst := signal.EmptyFloat64(1, 8)
		require.Nil(t, g.Render(dst, settings))
		return dst
	}

	direct := render(1, 2)
	swapped := render(2, 1)
	for j := range direct[0] {
		assert.Equal(t, -1.0, direct[0][j])
		assert.Equal(t, 1.0, swapped[0][j])
	}
}

func TestSettingsChange(t *testing.T) {
	g := graph.New()
	gen := g.AddNode(&mock.Generator{Value: 1})
	require.Nil(t, g.SetMaster(gen))

	settings := dspgraph.Settings{SampleRate: 44100, Frames: 64, Channels: 1}
	dst := signal.EmptyFloat64(1, 64)
	require.Nil(t, g.Render(dst, settings))

	// double the frame count, no residue from the smaller buffers
	settings.Frames = 128
	dst = signal.EmptyFloat64(1, 128)
	require.Nil(t, g.Render(dst, settings))
	for j := range dst[0] {
		assert.Equal(t, 1.0, dst[0][j])
	}
}

func TestUnitFailure(t *testing.T) {
	failure := errors.New("unit broke")
	g := graph.New()
	master := g.AddNode(&mock.Pass{})
	failer := &mock.Failer{UID: dspgraph.NewUID(), Err: failure}
	failing := g.AddNode(failer)
	require.Nil(t, g.AddInput(failing, master))
	require.Nil(t, g.SetMaster(master))

	settings := dspgraph.Settings{SampleRate: 44100, Frames: 16, Channels: 1}
	err := g.Render(signal.EmptyFloat64(1, 16), settings)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, failure))

	// the error carries both the node and the unit which raised it
	var unitErr *graph.UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, failing, unitErr.Node)
	assert.Equal(t, failer.ID(), unitErr.Unit)
	assert.Contains(t, unitErr.Error(), failer.ID())
}

func TestRenderAfterMutation(t *testing.T) {
	g := graph.New()
	master := g.AddNode(&mock.Pass{})
	first := g.AddNode(&mock.Generator{Value: 1})
	require.Nil(t, g.AddInput(first, master))
	require.Nil(t, g.SetMaster(master))

	settings := dspgraph.Settings{SampleRate: 44100, Frames: 8, Channels: 1}
	dst := signal.EmptyFloat64(1, 8)
	require.Nil(t, g.Render(dst, settings))
	assert.Equal(t, 1.0, dst[0][0])

	// the cached order is rebuilt after the topology changed
	require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: 2}), master))
	require.Nil(t, g.Render(dst, settings))
	assert.Equal(t, 3.0, dst[0][0])

	require.Nil(t, g.RemoveInput(first, master))
	require.Nil(t, g.Render(dst, settings))
	assert.Equal(t, 2.0, dst[0][0])
}

func TestRenderPreallocated(t *testing.T) {
	settings := dspgraph.Settings{SampleRate: 44100, Frames: 32, Channels: 2}
	g := graph.New(graph.WithCapacity(4), graph.WithSettings(settings))
	master := g.AddNode(&mock.Pass{})
	require.Nil(t, g.AddInput(g.AddNode(&mock.Generator{Value: 1}), master))
	require.Nil(t, g.SetMaster(master))

	dst := signal.EmptyFloat64(2, 32)
	require.Nil(t, g.Render(dst, settings))
	assert.Equal(t, 1.0, dst[1][31])
}
