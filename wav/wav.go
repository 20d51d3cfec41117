// Package wav lets the graph read and write wav files: Sampler plays a
// decoded file as a generator unit, Sink pulls rendered audio into a
// file.
package wav

import (
	"errors"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
var ErrUnsupportedBitDepth = errors.New("wav: only 16 and 32 bit depth are supported")

// ErrInvalidWav is returned when the decoded file is not a valid wav.
var ErrInvalidWav = errors.New("wav: file is not valid")

// Sampler is a generator unit playing a wav file decoded into memory.
// The file channels are mapped onto the render channels: missing
// channels repeat the last decoded one.
type Sampler struct {
	dspgraph.UID
	buffer     signal.Float64
	position   int
	loop       bool
	sampleRate int
}

// SamplerOption provides a way to set functional parameters to sampler.
type SamplerOption func(s *Sampler)

// WithLoop makes the sampler wrap around instead of falling silent
// when the file ends.
func WithLoop() SamplerOption {
	return func(s *Sampler) {
		s.loop = true
	}
}

// NewSampler decodes the whole file into memory and returns a sampler
// playing it.
func NewSampler(path string, options ...SamplerOption) (*Sampler, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWav
	}
	bitDepth := signal.BitDepth(decoder.BitDepth)
	if bitDepth != signal.BitDepth16 && bitDepth != signal.BitDepth32 {
		return nil, ErrUnsupportedBitDepth
	}
	ib, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	s := &Sampler{
		UID: dspgraph.NewUID(),
		buffer: signal.InterInt{
			Data:        ib.Data,
			NumChannels: ib.Format.NumChannels,
			BitDepth:    bitDepth,
		}.AsFloat64(),
		sampleRate: int(decoder.SampleRate),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// SampleRate returns the sample rate of the decoded file.
func (s *Sampler) SampleRate() int {
	return s.sampleRate
}

// NumChannels returns the number of channels of the decoded file.
func (s *Sampler) NumChannels() int {
	return s.buffer.NumChannels()
}

// Process writes the next frames of the decoded file.
func (s *Sampler) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	size := s.buffer.Size()
	for i := 0; i < settings.Frames && i < out.Size(); i++ {
		if s.position >= size {
			if !s.loop || size == 0 {
				for c := range out {
					out[c][i] = 0
				}
				continue
			}
			s.position = 0
		}
		for c := range out {
			source := c
			if source >= s.buffer.NumChannels() {
				source = s.buffer.NumChannels() - 1
			}
			out[c][i] = s.buffer[source][s.position]
		}
		s.position++
	}
	return nil
}

// Sink renders audio to a wav file.
type Sink struct {
	path     string
	bitDepth signal.BitDepth
	format   int
}

// NewSink creates new wav sink.
func NewSink(path string, bitDepth signal.BitDepth) (*Sink, error) {
	if bitDepth != signal.BitDepth16 && bitDepth != signal.BitDepth32 {
		return nil, ErrUnsupportedBitDepth
	}
	return &Sink{
		path:     path,
		bitDepth: bitDepth,
		format:   1,
	}, nil
}

// Render pulls the given number of buffers from the renderer and
// encodes them into the file.
func (s *Sink) Render(r dspgraph.Renderer, settings dspgraph.Settings, buffers int) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	e := wav.NewEncoder(f, settings.SampleRate, int(s.bitDepth), settings.Channels, s.format)

	buf := signal.EmptyFloat64(settings.Channels, settings.Frames)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: settings.Channels,
			SampleRate:  settings.SampleRate,
		},
		SourceBitDepth: int(s.bitDepth),
	}
	for i := 0; i < buffers; i++ {
		if err = r.Render(buf, settings); err != nil {
			break
		}
		ib.Data = buf.AsInterInt(s.bitDepth)
		if err = e.Write(ib); err != nil {
			break
		}
	}
	if err != nil {
		e.Close()
		f.Close()
		return err
	}
	if err = e.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
