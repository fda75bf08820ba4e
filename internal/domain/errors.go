package domain

import "errors"

var (
	// ErrNoAudio is returned by the recorder when no chunk was captured.
	ErrNoAudio = errors.New("no audio recorded")
	// ErrNoSpeech is returned when the recognizer produced no usable text.
	ErrNoSpeech = errors.New("no clear speech detected - try speaking louder or closer to the microphone")
	// ErrTrackerNotConfigured is returned when publishing without an issue tracker.
	ErrTrackerNotConfigured = errors.New("issue tracker not configured: set GITHUB_TOKEN and GITHUB_REPO")
)

// ConfigError is fatal at startup: a missing credential or an unusable device.
type ConfigError struct {
	Msg string
	// Credential names the environment variable that is missing, if any.
	Credential string
	Err        error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RecognitionError covers every speech-to-text failure, including ErrNoSpeech.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string { return "transcription failed: " + e.Err.Error() }
func (e *RecognitionError) Unwrap() error { return e.Err }

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "processing failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

type PublishError struct {
	Err error
}

func (e *PublishError) Error() string { return "creating issue: " + e.Err.Error() }
func (e *PublishError) Unwrap() error { return e.Err }
