package application

import (
	"context"
	"errors"

	"voice-to-docs/internal/domain"
)

const (
	rewritePromptPrefix = "Please convert this casual speech into clear, actionable engineering requirements:\n\n"
	rewriteMaxTokens    = 1000
)

type Rewriter struct {
	generator TextGenerator
	template  string
}

func NewRewriter(generator TextGenerator, template string) *Rewriter {
	return &Rewriter{
		generator: generator,
		template:  template,
	}
}

func (r *Rewriter) Rewrite(ctx context.Context, transcript string) (string, error) {
	text, err := r.generator.Generate(ctx, GenerateRequest{
		System:    r.template,
		Prompt:    rewritePromptPrefix + transcript,
		MaxTokens: rewriteMaxTokens,
	})
	if err != nil {
		return "", &domain.GenerationError{Err: err}
	}
	if text == "" {
		return "", &domain.GenerationError{Err: errors.New("empty response")}
	}
	return text, nil
}
