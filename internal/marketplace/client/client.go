// Package client is the gateway's only door to the upstream marketplace
// API. Authorization is explicit: every call takes a RequestContext
// carrying the bearer token, never ambient global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestContext carries per-request authorization for upstream calls.
// An empty token sends the request unauthenticated; the upstream rejects
// it for protected endpoints.
type RequestContext struct {
	Token string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// do performs one upstream call. No retries: a failed call surfaces to the
// caller, who surfaces it to the user.
func (c *Client) do(
	ctx context.Context,
	rc RequestContext,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marketplace: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("marketplace: build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.Token != "" {
		req.Header.Set("Authorization", "Bearer "+rc.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace: %s %s: %w", method, path, ErrNetwork)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if out == nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("marketplace: decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rc RequestContext, path string, query url.Values, out any) error {
	return c.do(ctx, rc, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, rc RequestContext, path string, body, out any) error {
	return c.do(ctx, rc, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, rc RequestContext, path string, body, out any) error {
	return c.do(ctx, rc, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, rc RequestContext, path string) error {
	return c.do(ctx, rc, http.MethodDelete, path, nil, nil, nil)
}
