// Package api implements the generic authenticated client for the HCP
// resource API, including error classification, bounded retry for
// idempotent verbs, and cursor pagination.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/logger"
	"github.com/gcp-hcp/gcphcp/internal/retry"
)

// Verb is a resource operation.
type Verb int

const (
	List Verb = iota
	Create
	Describe
	Update
	Delete
	Status
)

// Idempotent reports whether the verb may be silently retried.
// Create/Update/Delete never are, to avoid duplicate side effects.
func (v Verb) Idempotent() bool {
	switch v {
	case List, Describe, Status:
		return true
	default:
		return false
	}
}

func (v Verb) String() string {
	switch v {
	case List:
		return "list"
	case Create:
		return "create"
	case Describe:
		return "describe"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Status:
		return "status"
	default:
		return "unknown"
	}
}

// Kind identifies a resource collection.
type Kind int

const (
	Clusters Kind = iota
	NodePools
)

// Path returns the URL path segment for the kind.
func (k Kind) Path() string {
	if k == NodePools {
		return "nodepools"
	}
	return "clusters"
}

// collectionKey is the response field holding list items.
func (k Kind) collectionKey() string {
	return k.Path()
}

// Request describes one resource operation. ID is required for
// Describe/Update/Delete/Status; Body for Create/Update. Limit bounds
// how many items a List accumulates across pages (0 = unbounded).
type Request struct {
	Verb  Verb
	Kind  Kind
	ID    string
	Body  *Document
	Query url.Values
	Limit int
}

// TokenSource supplies bearer tokens. Refresh forces a new access
// token after the API rejected the current one.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
	AccountEmail() string
}

// Client executes requests against the resource API.
type Client struct {
	base     *url.URL
	httpc    *http.Client
	tokens   TokenSource
	retryCfg retry.Config
	log      *slog.Logger
}

// New builds a client from the resolved configuration. The endpoint is
// validated during config resolution, before any network use.
func New(cfg *config.Config, tokens TokenSource) (*Client, error) {
	base, err := url.Parse(cfg.APIEndpoint)
	if err != nil {
		return nil, clierr.Wrap(clierr.Config, "invalid api_endpoint", err)
	}
	retryCfg := retry.APIPolicy
	if cfg.RetryAttempts > 0 {
		retryCfg.MaxAttempts = cfg.RetryAttempts
	}
	return &Client{
		base:     base,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		tokens:   tokens,
		retryCfg: retryCfg,
		log:      logger.Get(),
	}, nil
}

// Execute runs one resource operation and returns its result.
func (c *Client) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Verb == List {
		return c.executeList(ctx, req)
	}

	method, path, err := endpointFor(req)
	if err != nil {
		return nil, err
	}
	var doc *Document
	err = c.withRetry(ctx, req.Verb, func() error {
		var reqErr error
		doc, reqErr = c.roundTrip(ctx, method, path, req.Query, req.Body)
		return reqErr
	})
	if err != nil {
		return nil, err
	}
	if req.Verb == Delete {
		return EmptyResult(), nil
	}
	if doc == nil {
		return EmptyResult(), nil
	}
	return ItemResult(doc), nil
}

// executeList follows the next_page_token cursor, concatenating pages
// in server order until the cursor runs out or Limit is reached.
func (c *Client) executeList(ctx context.Context, req Request) (*Result, error) {
	path := "/api/v1/" + req.Kind.Path()
	var items []*Document
	pageToken := ""

	for {
		query := url.Values{}
		for k, vs := range req.Query {
			query[k] = vs
		}
		if pageToken != "" {
			query.Set("page_token", pageToken)
		}

		var page *Document
		err := c.withRetry(ctx, req.Verb, func() error {
			var reqErr error
			page, reqErr = c.roundTrip(ctx, http.MethodGet, path, query, nil)
			return reqErr
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}

		for _, item := range pageItems(page, req.Kind) {
			items = append(items, item)
			if req.Limit > 0 && len(items) >= req.Limit {
				return CollectionResult(items), nil
			}
		}

		pageToken = page.String("next_page_token")
		if pageToken == "" {
			break
		}
	}
	return CollectionResult(items), nil
}

func pageItems(page *Document, kind Kind) []*Document {
	raw, ok := page.Get(kind.collectionKey())
	if !ok {
		raw, ok = page.Get("items")
	}
	if !ok {
		return nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	items := make([]*Document, 0, len(arr))
	for _, v := range arr {
		if doc, ok := v.(*Document); ok {
			items = append(items, doc)
		}
	}
	return items
}

func endpointFor(req Request) (method, path string, err error) {
	base := "/api/v1/" + req.Kind.Path()
	switch req.Verb {
	case Create:
		return http.MethodPost, base, nil
	case Describe:
		return http.MethodGet, base + "/" + req.ID, nil
	case Update:
		return http.MethodPut, base + "/" + req.ID, nil
	case Delete:
		return http.MethodDelete, base + "/" + req.ID, nil
	case Status:
		if req.Kind != Clusters {
			return "", "", clierr.Newf(clierr.Validation, "status is not supported for %s", req.Kind.Path())
		}
		return http.MethodGet, base + "/" + req.ID + "/status", nil
	default:
		return "", "", clierr.Newf(clierr.Validation, "unsupported verb %s", req.Verb)
	}
}

func (c *Client) withRetry(ctx context.Context, verb Verb, fn func() error) error {
	cfg := c.retryCfg
	if !verb.Idempotent() {
		cfg.MaxAttempts = 1
	}
	return retry.New(cfg).Do(ctx, fn)
}

// roundTrip performs one HTTP exchange, with at most one token
// refresh-and-retry when the API rejects the bearer token.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body *Document) (*Document, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	doc, status, err := c.send(ctx, method, path, query, body, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// One forced refresh, never more: a persistently rejected
		// token must not loop.
		c.log.Debug("token rejected by API, refreshing once", "status", status)
		token, err = c.tokens.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		doc, status, err = c.send(ctx, method, path, query, body, token)
		if err != nil {
			return nil, err
		}
	}
	if status >= 400 {
		return nil, statusError(status, doc)
	}
	return doc, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body *Document, token string) (*Document, int, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, 0, clierr.Wrap(clierr.Internal, "failed to build request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if email := c.tokens.AccountEmail(); email != "" {
		httpReq.Header.Set("X-Account-Email", email)
	}

	c.log.Debug("sending API request", "method", method, "url", u.String())
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, 0, clierr.Wrap(clierr.Network, fmt.Sprintf("request to %s failed", u.Host), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, clierr.Wrap(clierr.Network, "failed to read response", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, nil
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		if resp.StatusCode >= 400 {
			// Non-JSON error bodies still classify by status; keep the
			// raw text as detail.
			return NewDocument().Set("detail", strings.TrimSpace(string(data))), resp.StatusCode, nil
		}
		return nil, resp.StatusCode, clierr.Wrap(clierr.Server, "API returned malformed JSON", err)
	}
	return doc, resp.StatusCode, nil
}

// statusError maps an HTTP status and error body to the taxonomy.
// Validation bodies pass field detail through verbatim.
func statusError(status int, body *Document) error {
	detail := ""
	if body != nil {
		for _, key := range []string{"detail", "error", "message"} {
			if detail = body.String(key); detail != "" {
				break
			}
		}
		if detail == "" {
			if data, err := json.Marshal(body); err == nil {
				detail = string(data)
			}
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return clierr.Newf(clierr.Auth, "API rejected credentials (HTTP %d); run 'gcphcp auth login'", status).WithDetail(detail)
	case status == http.StatusNotFound:
		return clierr.New(clierr.NotFound, "resource not found").WithDetail(detail)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return clierr.Newf(clierr.Validation, "API rejected request (HTTP %d)", status).WithDetail(detail)
	case status >= 500:
		return clierr.Newf(clierr.Server, "API server error (HTTP %d)", status).WithDetail(detail)
	default:
		return clierr.Newf(clierr.Validation, "API request failed (HTTP %d)", status).WithDetail(detail)
	}
}
