package dspgraph

import (
	"github.com/rs/xid"

	"github.com/dudk/dspgraph/signal"
)

// Settings describe a single render call: how many samples per second,
// how many frames per buffer and how many channels. Settings are
// immutable within one render call.
type Settings struct {
	SampleRate int
	Frames     int
	Channels   int
}

// BufferSize returns the total number of samples in an interleaved
// buffer with these settings.
func (s Settings) BufferSize() int {
	return s.Frames * s.Channels
}

// CDQuality returns default stereo settings: 44100 Hz, 512 frames.
func CDQuality() Settings {
	return Settings{
		SampleRate: 44100,
		Frames:     512,
		Channels:   2,
	}
}

// Unit produces or transforms audio. It is implemented by every node
// of a graph. Process writes settings.Frames frames into out. For
// generator nodes in is nil, otherwise in carries the summed buffers
// of the node's inputs. Process must not block or allocate in its
// steady state.
type Unit interface {
	Process(out signal.Float64, in signal.Float64, settings Settings) error
}

// Combiner is implemented by units that combine their input buffers
// themselves instead of receiving a single summed buffer. The buffers
// in ins follow the order in which inputs were added to the node.
type Combiner interface {
	Combine(out signal.Float64, ins []signal.Float64, settings Settings) error
}

// Renderer produces one buffer of output audio per call. It is
// consumed by transports such as portaudio.Player or wav.Sink and
// implemented by graph.Graph.
type Renderer interface {
	Render(dst signal.Float64, settings Settings) error
}

// UID is a read-only unique identifier. Embed it into units to give
// them identity in logs.
type UID struct {
	value string
}

// NewUID returns a new unique identifier.
func NewUID() UID {
	return UID{value: xid.New().String()}
}

// ID returns the identifier value.
func (u UID) ID() string {
	return u.value
}
