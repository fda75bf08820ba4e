// Package github files documents as GitHub issues.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
)

type Client struct {
	client *gh.Client
	owner  string
	repo   string
	logger *slog.Logger
}

func NewClient(token, repository string, logger *slog.Logger) (*Client, error) {
	return NewClientWithURL(token, repository, "", logger)
}

// NewClientWithURL points the client at baseURL instead of api.github.com.
func NewClientWithURL(token, repository, baseURL string, logger *slog.Logger) (*Client, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	client := gh.NewClient(nil).WithAuthToken(token)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github url: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
		logger: logger,
	}, nil
}

// Verify checks that the token can see the repository.
func (c *Client) Verify(ctx context.Context) error {
	return infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		_, resp, err := c.client.Repositories.Get(ctx, c.owner, c.repo)
		if err != nil {
			if resp != nil && !infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return infra.Permanent(fmt.Errorf("accessing %s/%s: %w", c.owner, c.repo, err))
			}
			return fmt.Errorf("accessing %s/%s: %w", c.owner, c.repo, err)
		}
		return nil
	})
}

// CreateIssue is not retried: a timed-out create may still have succeeded.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*domain.Issue, error) {
	req := &gh.IssueRequest{
		Title:  gh.String(title),
		Body:   gh.String(body),
		Labels: &labels,
	}

	issue, resp, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, fmt.Errorf("creating issue in %s/%s: %w", c.owner, c.repo, err)
	}
	if resp != nil && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("creating issue in %s/%s: unexpected status %d", c.owner, c.repo, resp.StatusCode)
	}

	c.logger.Debug("issue created", "number", issue.GetNumber(), "repo", c.owner+"/"+c.repo)

	return &domain.Issue{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

func splitRepository(repository string) (string, string, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(repository), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", repository)
	}
	return owner, repo, nil
}
