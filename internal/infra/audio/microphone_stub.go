//go:build !portaudio
// +build !portaudio

package audio

import (
	"errors"
	"log/slog"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

var errNoPortAudio = errors.New("audio capture not available: rebuild with -tags portaudio")

// PortAudioBackend stub when portaudio is not available
type PortAudioBackend struct {
	logger *slog.Logger
}

func NewPortAudioBackend(logger *slog.Logger) *PortAudioBackend {
	return &PortAudioBackend{logger: logger}
}

func (b *PortAudioBackend) Start() error {
	return errNoPortAudio
}

func (b *PortAudioBackend) Stop() error {
	return nil
}

func (b *PortAudioBackend) DeviceCount() (int, error) {
	return 0, errNoPortAudio
}

func (b *PortAudioBackend) DeviceInfo(_ int) (domain.AudioDevice, error) {
	return domain.AudioDevice{}, errNoPortAudio
}

func (b *PortAudioBackend) OpenInput(_ int, _ application.AudioFormat) (application.InputStream, error) {
	return nil, errNoPortAudio
}
