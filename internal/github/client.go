// Package github provides the thin GitHub API surface used by doctor checks.
// The rebase core never talks to the network beyond git fetch; this client
// only cross-checks remote identity and the upstream default branch.
package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"canopy.dev/canopyctl/internal/git"
)

// RepoInfo describes a repository as reported by the GitHub API
type RepoInfo struct {
	Owner         string
	Name          string
	DefaultBranch string
	Archived      bool
}

// Client wraps the GitHub API client
type Client struct {
	gh *github.Client
}

// NewClient creates a Client authenticated with the given token. An empty
// token yields an unauthenticated client, which is enough for public repos.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{gh: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// GetToken returns a GitHub token from GITHUB_TOKEN or the gh CLI. Returns
// empty without error when neither is available.
func GetToken(ctx context.Context, getenv func(string) string) string {
	if token := getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if output, err := git.RunGHCommand(ctx, "auth", "token"); err == nil {
		return strings.TrimSpace(output)
	}
	return ""
}

// GetRepo fetches repository metadata
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*RepoInfo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s/%s: %w", owner, name, err)
	}
	return &RepoInfo{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Archived:      repo.GetArchived(),
	}, nil
}

// remoteURLPattern matches the owner/repo pair in https and scp-like ssh
// remote URLs.
var remoteURLPattern = regexp.MustCompile(`(?:github\.com[:/])([^/]+)/([^/\s]+?)(?:\.git)?$`)

// ParseRemoteURL extracts owner and repo name from a git remote URL
func ParseRemoteURL(url string) (owner, name string, err error) {
	matches := remoteURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if matches == nil {
		return "", "", fmt.Errorf("cannot parse remote URL %q", url)
	}
	return matches[1], matches[2], nil
}
