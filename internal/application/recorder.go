package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"voice-to-docs/internal/domain"
)

// Recorder captures audio from a single device bound at construction.
type Recorder struct {
	backend AudioBackend
	writer  WavWriter
	device  domain.AudioDevice
	format  AudioFormat
	logger  *slog.Logger
}

func NewRecorder(backend AudioBackend, writer WavWriter, device domain.AudioDevice, logger *slog.Logger) *Recorder {
	return &Recorder{
		backend: backend,
		writer:  writer,
		device:  device,
		format:  DefaultAudioFormat(),
		logger:  logger,
	}
}

func (r *Recorder) Device() domain.AudioDevice {
	return r.device
}

// Record reads chunks until waitStop returns, then writes them to a
// temporary WAV file. It returns domain.ErrNoAudio when nothing was captured.
// waitStop must return once its context is cancelled; Record does not
// return before it has.
func (r *Recorder) Record(ctx context.Context, waitStop StopFunc) (*domain.RecordingSession, error) {
	session := &domain.RecordingSession{
		ID:          uuid.NewString(),
		DeviceIndex: r.device.Index,
		SampleRate:  r.format.SampleRate,
		Channels:    r.format.Channels,
	}
	logger := r.logger.With("session", session.ID)

	stream, err := r.backend.OpenInput(r.device.Index, r.format)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logger.Warn("closing stream", "error", err)
		}
	}()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting stream: %w", err)
	}

	listenCtx, cancel := context.WithCancel(ctx)
	listenerDone := make(chan struct{})
	defer func() {
		cancel()
		<-listenerDone
	}()

	var stopped atomic.Bool
	go func() {
		defer close(listenerDone)
		waitStop(listenCtx)
		stopped.Store(true)
	}()

	logger.Debug("recording started", "device", r.device.Index, "sampleRate", r.format.SampleRate)

	var chunks [][]int16
	overflows := 0
	for !stopped.Load() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		samples, err := stream.Read()
		if errors.Is(err, ErrInputOverflow) {
			overflows++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		chunks = append(chunks, samples)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("recording stopped", "chunks", len(chunks), "overflows", overflows)

	if len(chunks) == 0 {
		return nil, domain.ErrNoAudio
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	samples := make([]int16, 0, total)
	for _, c := range chunks {
		samples = append(samples, c...)
	}

	path, err := r.writer.WriteTemp(session.ID, samples, r.format)
	if err != nil {
		return nil, fmt.Errorf("writing wav: %w", err)
	}

	session.Chunks = len(chunks)
	session.Path = path
	return session, nil
}
