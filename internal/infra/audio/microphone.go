//go:build portaudio
// +build portaudio

package audio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

// PortAudioBackend enumerates devices and opens input streams through
// PortAudio. Start must be called before use and Stop once at exit.
type PortAudioBackend struct {
	logger *slog.Logger
}

func NewPortAudioBackend(logger *slog.Logger) *PortAudioBackend {
	return &PortAudioBackend{logger: logger}
}

func (b *PortAudioBackend) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	return nil
}

func (b *PortAudioBackend) Stop() error {
	return portaudio.Terminate()
}

func (b *PortAudioBackend) DeviceCount() (int, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return 0, fmt.Errorf("listing devices: %w", err)
	}
	return len(devices), nil
}

func (b *PortAudioBackend) DeviceInfo(index int) (domain.AudioDevice, error) {
	dev, err := deviceAt(index)
	if err != nil {
		return domain.AudioDevice{}, err
	}
	return domain.AudioDevice{
		Index:         index,
		Name:          dev.Name,
		InputChannels: dev.MaxInputChannels,
		SampleRate:    dev.DefaultSampleRate,
	}, nil
}

func (b *PortAudioBackend) OpenInput(index int, format application.AudioFormat) (application.InputStream, error) {
	dev, err := deviceAt(index)
	if err != nil {
		return nil, err
	}

	buffer := make([]int16, format.FramesPerBuffer*format.Channels)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: format.Channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(format.SampleRate),
		FramesPerBuffer: format.FramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		return nil, fmt.Errorf("opening stream on device %d: %w", index, err)
	}

	b.logger.Debug("input stream opened", "device", index, "name", dev.Name, "sampleRate", format.SampleRate)
	return &inputStream{stream: stream, buffer: buffer}, nil
}

func deviceAt(index int) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	if index < 0 || index >= len(devices) {
		return nil, fmt.Errorf("device index %d out of range (0-%d)", index, len(devices)-1)
	}
	return devices[index], nil
}

type inputStream struct {
	stream  *portaudio.Stream
	buffer  []int16
	started bool
}

func (s *inputStream) Start() error {
	if err := s.stream.Start(); err != nil {
		return err
	}
	s.started = true
	return nil
}

func (s *inputStream) Read() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		if errors.Is(err, portaudio.InputOverflowed) {
			return nil, application.ErrInputOverflow
		}
		return nil, err
	}

	chunk := make([]int16, len(s.buffer))
	copy(chunk, s.buffer)
	return chunk, nil
}

func (s *inputStream) Close() error {
	if s.started {
		s.stream.Stop()
	}
	return s.stream.Close()
}
