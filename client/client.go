// Package client is a typed HTTP client for the survey backend. It holds
// no ambient credentials: operations that need authentication take an
// explicit Session value.
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

	"github.com/go-chi/render"

	"github.com/BryanM518/encuestas-cli/errs"
)

// Session carries the bearer credential for owner operations. The zero
// value is an anonymous session.
type Session struct {
	Token        string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Client struct {
	base string
	http *http.Client
}

// New builds a client for the backend rooted at baseURL (for example
// "http://localhost:8000/api/survey_api"). Passing a nil *http.Client
// uses http.DefaultClient; timeouts are the transport's business.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: hc,
	}
}

// authed guards owner operations: a missing credential is a local
// precondition failure, no request is issued.
func authed(session Session) error {
	if !session.Authenticated() {
		return errs.Validation("not logged in")
	}
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, session Session, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client.encode_body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return &errs.TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportError(resp)
	}
	if out == nil {
		return nil
	}
	if err := render.DecodeJSON(resp.Body, out); err != nil {
		return &errs.TransportError{Status: resp.StatusCode, Err: err}
	}
	return nil
}

// doRaw issues a GET and hands the undecoded body to the caller, for
// binary downloads (exports, reports, logo files).
func (c *Client) doRaw(ctx context.Context, path string, session Session, query url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	if session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, transportError(resp)
	}
	return resp.Body, nil
}

// transportError extracts the backend's structured detail message when
// present, falling back to a generic failure string.
func transportError(resp *http.Response) error {
	te := &errs.TransportError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return te
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		te.Detail = body.Detail
	}
	return te
}
