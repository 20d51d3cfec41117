// Package mp3 lets the graph write rendered audio to mp3 files.
package mp3

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/viert/lame"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Sink renders audio to an mp3 file.
type Sink struct {
	path    string
	bitRate int
	quality int
}

// NewSink creates new mp3 sink.
func NewSink(path string, bitRate int, quality int) *Sink {
	return &Sink{
		path:    path,
		bitRate: bitRate,
		quality: quality,
	}
}

// Render pulls the given number of buffers from the renderer and
// encodes them into the file.
func (s *Sink) Render(r dspgraph.Renderer, settings dspgraph.Settings, buffers int) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}

	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(s.bitRate)
	wr.Encoder.SetQuality(s.quality)
	wr.Encoder.SetNumChannels(settings.Channels)
	wr.Encoder.SetInSamplerate(settings.SampleRate)
	wr.Encoder.SetMode(lame.JOINT_STEREO)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	buf := signal.EmptyFloat64(settings.Channels, settings.Frames)
	for i := 0; i < buffers; i++ {
		if err = r.Render(buf, settings); err != nil {
			break
		}
		if err = write(wr, buf); err != nil {
			break
		}
	}
	if err != nil {
		wr.Close()
		f.Close()
		return err
	}
	if err = wr.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// write encodes one buffer as interleaved 16 bit little endian pcm.
func write(wr *lame.LameWriter, buf signal.Float64) error {
	b := new(bytes.Buffer)
	ints := buf.AsInterInt(signal.BitDepth16)
	for i := range ints {
		if err := binary.Write(b, binary.LittleEndian, int16(ints[i])); err != nil {
			return err
		}
	}
	_, err := wr.Write(b.Bytes())
	return err
}
