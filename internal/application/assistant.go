package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"voice-to-docs/internal/domain"
)

type SessionResult struct {
	Transcript domain.Transcript
	Document   domain.Document
	Issue      *domain.Issue
}

type Assistant struct {
	recorder    *Recorder
	transcriber *Transcriber
	rewriter    *Rewriter
	publisher   *Publisher
	term        Terminal
	mode        domain.Mode
	logger      *slog.Logger
}

func NewAssistant(
	recorder *Recorder,
	transcriber *Transcriber,
	rewriter *Rewriter,
	publisher *Publisher,
	term Terminal,
	mode domain.Mode,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		recorder:    recorder,
		transcriber: transcriber,
		rewriter:    rewriter,
		publisher:   publisher,
		term:        term,
		mode:        mode,
		logger:      logger,
	}
}

// CanPublish reports whether documents from this assistant may be filed.
func (a *Assistant) CanPublish() bool {
	return a.mode.Publishes() && a.publisher.Configured()
}

// Run is the interactive loop. It returns nil when the user quits or input
// ends, and ctx.Err() when interrupted.
func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("assistant ready", "mode", a.mode, "device", a.recorder.Device().Index, "publishing", a.CanPublish())

	for {
		a.term.Info("Press Enter to start recording (or 'q' to quit):")

		line, err := a.term.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.term.Success("Goodbye!")
				return nil
			}
			return err
		}

		if strings.EqualFold(strings.TrimSpace(line), "q") {
			a.term.Success("Goodbye!")
			return nil
		}

		if _, err := a.RunSession(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Error("session failed", "error", err)
			a.term.Error(err.Error())
		}
	}
}

// RunSession performs one record, transcribe, rewrite and publish cycle.
// A recording without audio yields an empty result and no error.
func (a *Assistant) RunSession(ctx context.Context) (*SessionResult, error) {
	a.term.Warn("Recording started... Press ENTER to stop recording")

	session, err := a.recorder.Record(ctx, a.waitForStop)
	if errors.Is(err, domain.ErrNoAudio) {
		a.term.Warn("No audio recorded")
		return &SessionResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recording: %w", err)
	}

	logger := a.logger.With("session", session.ID)
	logger.Info("recorded audio", "chunks", session.Chunks, "path", session.Path)
	a.term.Success("Recording complete!")

	a.term.Info("Transcribing audio...")
	transcript, err := a.transcriber.Transcribe(ctx, session.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("transcribed", "chars", len(transcript.Text))
	a.term.Section("Original Transcript", transcript.Text)

	a.term.Info("Rewriting transcript...")
	body, err := a.rewriter.Rewrite(ctx, transcript.Text)
	if err != nil {
		return nil, err
	}

	result := &SessionResult{
		Transcript: transcript,
		Document:   domain.Document{Body: body, Mode: a.mode},
	}
	a.term.Section(documentHeading(a.mode), body)

	if a.CanPublish() {
		a.offerPublish(ctx, result, logger)
	}

	return result, nil
}

func (a *Assistant) offerPublish(ctx context.Context, result *SessionResult, logger *slog.Logger) {
	a.term.Info("Create GitHub issue? [y/N]")

	answer, err := a.term.ReadLine(ctx)
	if err != nil {
		logger.Debug("reading publish answer", "error", err)
		return
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		return
	}

	issue, err := a.publisher.Publish(ctx, &result.Document)
	if err != nil {
		a.term.Error(err.Error())
		return
	}

	result.Issue = issue
	a.term.Success(fmt.Sprintf("Created issue #%d: %s", issue.Number, issue.URL))
}

func (a *Assistant) waitForStop(ctx context.Context) {
	if _, err := a.term.ReadLine(ctx); err != nil {
		a.logger.Debug("stop listener ended", "error", err)
	}
}

func documentHeading(mode domain.Mode) string {
	if mode == domain.ModeAgilePM {
		return "GitHub Issue"
	}
	return "Engineering Requirements"
}
