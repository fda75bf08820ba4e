package application

import (
	"context"

	"voice-to-docs/internal/domain"
)

type IssueTracker interface {
	CreateIssue(ctx context.Context, title, body string, labels []string) (*domain.Issue, error)
}
