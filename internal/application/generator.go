package application

import "context"

type GenerateRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// TextGenerator returns the first text segment produced for the request.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
