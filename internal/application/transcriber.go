package application

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"voice-to-docs/internal/domain"
)

const minTranscriptLength = 3

type Transcriber struct {
	stt    SpeechToText
	remove func(string) error
	logger *slog.Logger
}

func NewTranscriber(stt SpeechToText, logger *slog.Logger) *Transcriber {
	return NewTranscriberWithRemover(stt, os.Remove, logger)
}

func NewTranscriberWithRemover(stt SpeechToText, remove func(string) error, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		stt:    stt,
		remove: remove,
		logger: logger,
	}
}

// Transcribe recognizes the speech in audioPath. The file is removed on
// every return path.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (domain.Transcript, error) {
	defer func() {
		if err := t.remove(audioPath); err != nil {
			t.logger.Debug("removing recording", "path", audioPath, "error", err)
		}
	}()

	text, err := t.stt.Transcribe(ctx, audioPath, RecognizeOptions{
		Language: domain.TranscriptLanguage,
		FP16:     false,
		Verbose:  false,
	})
	if err != nil {
		return domain.Transcript{}, &domain.RecognitionError{Err: err}
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minTranscriptLength {
		return domain.Transcript{}, &domain.RecognitionError{Err: domain.ErrNoSpeech}
	}

	return domain.Transcript{Text: text, Language: domain.TranscriptLanguage}, nil
}
