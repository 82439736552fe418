package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Error values for store operations.
var (
	ErrNotFound     = errors.New("document not found")
	ErrUnauthorized = errors.New("store rejected credentials")
	ErrStore        = errors.New("store request failed")
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the service root, e.g. "https://docs.example.com".
	BaseURL string

	// Token authenticates every request (Authorization: Bearer).
	Token string

	// PathPrefix, when set, is prepended to every document's endpoint
	// path before it is written. It never changes document shape.
	PathPrefix string

	// HTTPClient overrides the default client (10s timeout).
	HTTPClient *http.Client

	// Logger overrides the default logrus standard logger.
	Logger *logrus.Logger
}

// Client talks to the remote documentation service.
type Client struct {
	baseURL    string
	token      string
	pathPrefix string
	http       *http.Client
	log        *logrus.Logger
}

// NewClient creates a store client. BaseURL is required.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL required", ErrStore)
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrStore, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		pathPrefix: opts.PathPrefix,
		http:       httpClient,
		log:        log,
	}, nil
}

// RewritePath applies the configured path prefix to an endpoint path.
func (c *Client) RewritePath(path string) string {
	if c.pathPrefix == "" {
		return path
	}
	return strings.TrimRight(c.pathPrefix, "/") + "/" + strings.TrimLeft(path, "/")
}

// CreateDoc stores a new document and returns it with the service-assigned id.
func (c *Client) CreateDoc(ctx context.Context, doc Document) (Document, error) {
	doc.Path = c.RewritePath(doc.Path)
	var created Document
	if err := c.do(ctx, http.MethodPost, "/api/docs", doc, &created); err != nil {
		return Document{}, fmt.Errorf("create doc %q: %w", doc.Title, err)
	}
	c.log.WithFields(logrus.Fields{"id": created.ID, "title": created.Title}).Info("document created")
	return created, nil
}

// GetDoc fetches one document by id.
func (c *Client) GetDoc(ctx context.Context, id string) (Document, error) {
	var doc Document
	if err := c.do(ctx, http.MethodGet, "/api/docs/"+url.PathEscape(id), nil, &doc); err != nil {
		return Document{}, fmt.Errorf("get doc %s: %w", id, err)
	}
	return doc, nil
}

// UpdateDoc replaces a stored document.
func (c *Client) UpdateDoc(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		return Document{}, fmt.Errorf("%w: update requires a document id", ErrStore)
	}
	doc.Path = c.RewritePath(doc.Path)
	var updated Document
	if err := c.do(ctx, http.MethodPut, "/api/docs/"+url.PathEscape(doc.ID), doc, &updated); err != nil {
		return Document{}, fmt.Errorf("update doc %s: %w", doc.ID, err)
	}
	c.log.WithField("id", doc.ID).Info("document updated")
	return updated, nil
}

// DeleteDoc removes a document by id.
func (c *Client) DeleteDoc(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/docs/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete doc %s: %w", id, err)
	}
	c.log.WithField("id", id).Info("document deleted")
	return nil
}

// ListNodes fetches the full folder/document hierarchy as a flat
// parent-linked collection.
func (c *Client) ListNodes(ctx context.Context) (NodeList, error) {
	var list NodeList
	if err := c.do(ctx, http.MethodGet, "/api/nodes", nil, &list); err != nil {
		return NodeList{}, fmt.Errorf("list nodes: %w", err)
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrStore, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
