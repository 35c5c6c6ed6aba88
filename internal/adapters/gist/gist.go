// Package gist publishes rating CSVs to GitHub gists and pulls them
// back for comparison runs. The access token is an opaque credential
// passed through to the API; the service neither validates nor stores
// it.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/ripper/pkg/logger"
	"github.com/okian/ripper/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultAPIURL      = "https://api.github.com"
	defaultHTTPTimeout = 15 * time.Second
	listPageSize       = 100
)

// Client talks to the GitHub gists API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	log        logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIURL overrides the GitHub API base URL, mainly for tests.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a gist client. The token must not be empty.
func New(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		apiURL:     defaultAPIURL,
		token:      token,
		log:        logger.Get().Named("gist"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// gistDoc mirrors the fields of the gists API this client reads.
type gistDoc struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	HTMLURL     string              `json:"html_url"`
	Files       map[string]gistFile `json:"files"`
}

type gistFile struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}

// gistPayload is the create/update request body.
type gistPayload struct {
	Description string                     `json:"description"`
	Public      bool                       `json:"public"`
	Files       map[string]gistFileContent `json:"files"`
}

type gistFileContent struct {
	Content string `json:"content"`
}

// Publish uploads files under a gist whose description contains name.
// An existing gist is updated in place; otherwise a new public gist is
// created. Returns the gist's HTML URL.
func (c *Client) Publish(ctx context.Context, name, description string, files map[string]string) (string, error) {
	payload := gistPayload{
		Description: description,
		Public:      true,
		Files:       make(map[string]gistFileContent, len(files)),
	}
	for filename, content := range files {
		payload.Files[filename] = gistFileContent{Content: content}
	}

	existing, err := c.findByName(ctx, name)
	if err != nil && err != errNoGist {
		metrics.RecordPublishError()
		return "", err
	}

	method, url := http.MethodPost, c.apiURL+"/gists"
	if err == nil {
		method, url = http.MethodPatch, c.apiURL+"/gists/"+existing.ID
	}

	var doc gistDoc
	if err := c.do(ctx, method, url, payload, &doc); err != nil {
		metrics.RecordPublishError()
		return "", err
	}

	metrics.RecordPublish()
	c.log.Info(ctx, "published gist",
		logger.String("name", name),
		logger.String("url", doc.HTMLURL),
		logger.Int("files", len(files)))
	return doc.HTMLURL, nil
}

// Pull downloads one file from the gist whose description contains
// name.
func (c *Client) Pull(ctx context.Context, name, filename string) (string, error) {
	doc, err := c.findByName(ctx, name)
	if err == errNoGist {
		return "", fmt.Errorf("%w: gist %q", ErrNotFound, name)
	}
	if err != nil {
		return "", err
	}

	file, ok := doc.Files[filename]
	if !ok {
		return "", fmt.Errorf("%w: file %q in gist %q", ErrNotFound, filename, name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.RawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d fetching %q", ErrRequest, resp.StatusCode, filename)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	return string(content), nil
}

// findByName lists the token owner's gists and returns the first whose
// description contains name. The listing is paginated; a short page
// marks the end.
func (c *Client) findByName(ctx context.Context, name string) (gistDoc, error) {
	for page := 1; ; page++ {
		var docs []gistDoc
		url := fmt.Sprintf("%s/gists?per_page=%d&page=%d", c.apiURL, listPageSize, page)
		if err := c.do(ctx, http.MethodGet, url, nil, &docs); err != nil {
			return gistDoc{}, err
		}
		for _, doc := range docs {
			if strings.Contains(doc.Description, name) {
				return doc, nil
			}
		}
		if len(docs) < listPageSize {
			return gistDoc{}, errNoGist
		}
	}
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d from %s %s", ErrRequest, resp.StatusCode, method, url)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
