package application

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"voice-to-docs/internal/domain"
)

// preferredKeywords is ranked: dedicated microphone vendors before the
// generic "usb" marker.
var preferredKeywords = []string{"hyperx", "blue", "rode", "shure", "usb"}

// ListDevices returns every input-capable device in backend order. A device
// whose metadata cannot be read is logged and skipped.
func ListDevices(backend AudioBackend, logger *slog.Logger) ([]domain.AudioDevice, error) {
	count, err := backend.DeviceCount()
	if err != nil {
		return nil, fmt.Errorf("counting audio devices: %w", err)
	}

	devices := make([]domain.AudioDevice, 0, count)
	for i := 0; i < count; i++ {
		info, err := backend.DeviceInfo(i)
		if err != nil {
			logger.Warn("reading audio device", "index", i, "error", err)
			continue
		}
		if info.IsInput() {
			devices = append(devices, info)
		}
	}

	return devices, nil
}

type DeviceSelector struct {
	backend AudioBackend
	logger  *slog.Logger
}

func NewDeviceSelector(backend AudioBackend, logger *slog.Logger) *DeviceSelector {
	return &DeviceSelector{
		backend: backend,
		logger:  logger,
	}
}

// Select resolves the capture device: the explicit index wins, then the
// AUDIO_DEVICE value, then auto-detection.
func (s *DeviceSelector) Select(explicit *int, envValue string) (domain.AudioDevice, error) {
	if explicit != nil {
		return s.Validate(*explicit)
	}

	if envValue = strings.TrimSpace(envValue); envValue != "" {
		index, err := strconv.Atoi(envValue)
		if err == nil {
			return s.Validate(index)
		}
		s.logger.Warn("invalid AUDIO_DEVICE value, using auto-detection", "value", envValue)
	}

	return s.AutoDetect()
}

func (s *DeviceSelector) Validate(index int) (domain.AudioDevice, error) {
	info, err := s.backend.DeviceInfo(index)
	if err != nil {
		return domain.AudioDevice{}, &domain.ConfigError{
			Msg: fmt.Sprintf("invalid audio device %d", index),
			Err: err,
		}
	}

	if !info.IsInput() {
		return domain.AudioDevice{}, &domain.ConfigError{
			Msg: fmt.Sprintf("invalid audio device %d", index),
			Err: fmt.Errorf("device %d doesn't support audio input", index),
		}
	}

	s.logger.Info("using audio device", "index", index, "name", info.Name)
	return info, nil
}

func (s *DeviceSelector) AutoDetect() (domain.AudioDevice, error) {
	devices, err := ListDevices(s.backend, s.logger)
	if err != nil {
		return domain.AudioDevice{}, &domain.ConfigError{Msg: "listing audio devices", Err: err}
	}

	if len(devices) == 0 {
		return domain.AudioDevice{}, &domain.ConfigError{Msg: "no audio input devices found"}
	}

	for _, keyword := range preferredKeywords {
		for _, d := range devices {
			if strings.Contains(strings.ToLower(d.Name), keyword) {
				s.logger.Info("auto-detected audio device", "index", d.Index, "name", d.Name)
				return d, nil
			}
		}
	}

	s.logger.Info("using default audio device", "index", devices[0].Index, "name", devices[0].Name)
	return devices[0], nil
}
