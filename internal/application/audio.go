package application

import (
	"context"
	"errors"

	"voice-to-docs/internal/domain"
)

// ErrInputOverflow is returned by InputStream.Read when the device buffer
// overflowed. The chunk is dropped and capture continues.
var ErrInputOverflow = errors.New("input overflowed")

type AudioBackend interface {
	DeviceCount() (int, error)
	DeviceInfo(index int) (domain.AudioDevice, error)
	OpenInput(index int, format AudioFormat) (InputStream, error)
}

type InputStream interface {
	Start() error
	// Read blocks until one chunk of FramesPerBuffer frames is available.
	Read() ([]int16, error)
	Close() error
}

// WavWriter persists captured samples to a temporary WAV file and returns its path.
type WavWriter interface {
	WriteTemp(sessionID string, samples []int16, format AudioFormat) (string, error)
}

// StopFunc blocks until the user asks to stop recording or ctx is done.
type StopFunc func(ctx context.Context)

type AudioFormat struct {
	SampleRate      int
	Channels        int
	BitDepth        int
	FramesPerBuffer int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate:      domain.SampleRate,
		Channels:        domain.Channels,
		BitDepth:        domain.BitDepth,
		FramesPerBuffer: domain.FramesPerChunk,
	}
}
