// Package portaudio plays rendered audio using the default device.
package portaudio

import (
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Player pulls audio from a renderer once per buffer period and writes
// it to the default portaudio output stream.
type Player struct {
	dspgraph.UID
	settings dspgraph.Settings
	buf      []float32
	stream   *portaudio.Stream
}

// NewPlayer returns new initialized player.
func NewPlayer(settings dspgraph.Settings) *Player {
	return &Player{
		UID:      dspgraph.NewUID(),
		settings: settings,
	}
}

// Play renders audio for the requested duration. It also initializes
// the portaudio api with default stream.
func (p *Player) Play(r dspgraph.Renderer, d time.Duration) error {
	p.buf = make([]float32, p.settings.BufferSize())
	err := portaudio.Initialize()
	if err != nil {
		return err
	}
	p.stream, err = portaudio.OpenDefaultStream(0, p.settings.Channels, float64(p.settings.SampleRate), p.settings.Frames, &p.buf)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err = p.stream.Start(); err != nil {
		p.flush()
		return err
	}

	period := signal.DurationOf(p.settings.SampleRate, int64(p.settings.Frames))
	buffers := int(d / period)
	out := signal.EmptyFloat64(p.settings.Channels, p.settings.Frames)
	for i := 0; i < buffers; i++ {
		if err = r.Render(out, p.settings); err != nil {
			break
		}
		for j := range out[0] {
			for c := range out {
				p.buf[j*p.settings.Channels+c] = float32(out[c][j])
			}
		}
		if err = p.stream.Write(); err != nil {
			break
		}
	}
	if err != nil {
		p.flush()
		return err
	}
	return p.flush()
}

// flush terminates portaudio structures.
func (p *Player) flush() error {
	err := p.stream.Stop()
	if err != nil {
		return err
	}
	err = p.stream.Close()
	if err != nil {
		return err
	}
	return portaudio.Terminate()
}
