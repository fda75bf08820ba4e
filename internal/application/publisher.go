package application

import (
	"context"
	"log/slog"

	"voice-to-docs/internal/domain"
)

const issueLabel = "voice-to-docs"

// Publisher files agile-pm documents as issues. A nil *Publisher is valid
// and reports domain.ErrTrackerNotConfigured.
type Publisher struct {
	tracker IssueTracker
	logger  *slog.Logger
}

func NewPublisher(tracker IssueTracker, logger *slog.Logger) *Publisher {
	return &Publisher{
		tracker: tracker,
		logger:  logger,
	}
}

func (p *Publisher) Configured() bool {
	return p != nil && p.tracker != nil
}

// Publish sets doc.Title and files the document.
func (p *Publisher) Publish(ctx context.Context, doc *domain.Document) (*domain.Issue, error) {
	if !p.Configured() {
		return nil, &domain.PublishError{Err: domain.ErrTrackerNotConfigured}
	}

	doc.Title = ExtractTitle(doc.Body)

	issue, err := p.tracker.CreateIssue(ctx, doc.Title, doc.Body, []string{issueLabel})
	if err != nil {
		p.logger.Error("creating issue", "title", doc.Title, "error", err)
		return nil, &domain.PublishError{Err: err}
	}

	p.logger.Info("created issue", "number", issue.Number, "url", issue.URL)
	return issue, nil
}
