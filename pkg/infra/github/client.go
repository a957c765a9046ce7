package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

const filesPerPage = 100

type client struct {
	githubClient *github.Client
}

type options struct {
	baseURL   string
	transport http.RoundTripper
}

// Option is a functional option for GitHub clients
type Option func(*options)

// WithBaseURL sets the REST API base URL, e.g. https://ghe.example.com/api/v3
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(tr http.RoundTripper) Option {
	return func(o *options) {
		o.transport = tr
	}
}

func buildOptions(opts []Option) *options {
	o := &options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newClient(httpClient *http.Client, o *options) (*client, error) {
	githubClient := github.NewClient(httpClient)

	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimRight(o.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", o.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{githubClient: githubClient}, nil
}

// NewClientWithToken creates a GitHub client authenticated with a token,
// such as the GITHUB_TOKEN of a GitHub Actions run
func NewClientWithToken(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty")
	}

	o := buildOptions(opts)
	httpClient := &http.Client{Transport: o.transport}
	c, err := newClient(httpClient, o)
	if err != nil {
		return nil, err
	}
	c.githubClient = c.githubClient.WithAuthToken(token)
	return c, nil
}

// NewClient creates a new GitHub client with App installation authentication
func NewClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	factory, err := NewAppClientFactory(appID, privateKey, opts...)
	if err != nil {
		return nil, err
	}
	return factory.ForInstallation(installationID)
}

// AppClientFactory creates installation scoped clients for a GitHub App
type AppClientFactory struct {
	appsTransport *ghinstallation.AppsTransport
	opts          *options
}

// NewAppClientFactory parses the App private key and returns a factory
func NewAppClientFactory(appID int64, privateKey []byte, opts ...Option) (*AppClientFactory, error) {
	o := buildOptions(opts)

	atr, err := ghinstallation.NewAppsTransport(o.transport, appID, normalizePrivateKey(privateKey))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport", goerr.V("app_id", appID))
	}
	if o.baseURL != "" {
		atr.BaseURL = strings.TrimRight(o.baseURL, "/")
	}

	return &AppClientFactory{
		appsTransport: atr,
		opts:          o,
	}, nil
}

// ForInstallation returns a client authenticated as the given installation
func (f *AppClientFactory) ForInstallation(installationID int64) (interfaces.GitHubClient, error) {
	if installationID == 0 {
		return nil, goerr.New("installation id is required")
	}

	itr := ghinstallation.NewFromAppsTransport(f.appsTransport, installationID)
	if f.opts.baseURL != "" {
		itr.BaseURL = strings.TrimRight(f.opts.baseURL, "/")
	}

	return newClient(&http.Client{Transport: itr}, f.opts)
}

// normalizePrivateKey accepts PEM content whose newlines were escaped as "\n",
// which is common when the key is passed through an environment variable
func normalizePrivateKey(key []byte) []byte {
	s := strings.TrimSpace(string(key))
	if !strings.Contains(s, "\n") && strings.Contains(s, `\n`) {
		s = strings.ReplaceAll(s, `\n`, "\n")
	}
	return []byte(s)
}

// ListPullRequestFiles returns all changed files of a pull request, following pagination
func (c *client) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.RawFileChange, error) {
	var raws []*model.RawFileChange
	opt := &github.ListOptions{PerPage: filesPerPage}

	for {
		files, resp, err := c.githubClient.PullRequests.ListFiles(ctx, owner, repo, number, opt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pull request files",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("number", number),
				goerr.V("page", opt.Page),
			)
		}

		for _, f := range files {
			raws = append(raws, toRawFileChange(f))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return raws, nil
}

// CreateComment posts body as an issue comment on the pull request
func (c *client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create comment",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}
	return nil
}

func toRawFileChange(f *github.CommitFile) *model.RawFileChange {
	if f == nil {
		return nil
	}
	return &model.RawFileChange{
		Filename:  f.Filename,
		Status:    f.Status,
		Additions: f.Additions,
		Deletions: f.Deletions,
		Patch:     f.Patch,
	}
}
