package anchor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/julius-network/safeprop/sdk"
)

// DefaultGitHubAPI is the GitHub REST API root.
const DefaultGitHubAPI = "https://api.github.com"

var issueLabels = []string{"Julius-Anchor", "Automated"}

// IssueLogger records a sync run in a durable, human readable log and returns a link to the entry.
type IssueLogger interface {
	LogIssue(ctx context.Context, title, body string) (string, error)
}

var _ IssueLogger = (*GitHubIssueLogger)(nil)

// GitHubIssueLogger opens an issue per sync run in a GitHub repository.
type GitHubIssueLogger struct {
	token string
	repo  string
	http  httpSettings
}

// NewGitHubIssueLogger returns a logger opening issues in repo ("owner/name").
func NewGitHubIssueLogger(token, repo string, opts ...HTTPOption) *GitHubIssueLogger {
	return &GitHubIssueLogger{
		token: token,
		repo:  repo,
		http:  newHTTPSettings(DefaultGitHubAPI, opts),
	}
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type issueResponse struct {
	HTMLURL string `json:"html_url"`
}

func (g *GitHubIssueLogger) LogIssue(ctx context.Context, title, body string) (string, error) {
	if g.token == "" || g.repo == "" {
		return "", fmt.Errorf("github token or repo: %w", ErrNotConfigured)
	}

	endpoint, err := url.JoinPath(g.http.endpoint, "repos", g.repo, "issues")
	if err != nil {
		return "", fmt.Errorf("failed to build request URL: %w", err)
	}

	status, respBody, err := g.http.post(ctx, endpoint, issueRequest{Title: title, Body: body, Labels: issueLabels},
		map[string]string{
			"Authorization": "token " + g.token,
			"Accept":        "application/vnd.github.v3+json",
		})
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", NewStatusError("github", status, string(respBody))
	}

	var issue issueResponse
	if err := json.Unmarshal(respBody, &issue); err != nil {
		return "", fmt.Errorf("failed to parse issue response: %w", err)
	}
	sdk.LoggerFrom(ctx).Infof("Logged to anchor: %s", issue.HTMLURL)

	return issue.HTMLURL, nil
}

// IssueTitle is the title of the issue logged for a sync run at t.
func IssueTitle(t time.Time) string {
	return "Anchor Sync: " + t.UTC().Format(time.DateOnly)
}
