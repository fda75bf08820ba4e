package application

import "context"

type RecognizeOptions struct {
	Language string
	FP16     bool
	Verbose  bool
}

type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string, opts RecognizeOptions) (string, error)
}
