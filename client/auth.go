package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/render"

	"github.com/BryanM518/encuestas-cli/errs"
)

// Register creates a new account. No session is required.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", Session{}, nil, body, nil)
}

// Login performs the password grant and returns a session holding the
// issued bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	return c.tokenGrant(ctx, url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	})
}

// Refresh trades a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, session Session) (Session, error) {
	if session.RefreshToken == "" {
		return Session{}, errs.Validation("no refresh token")
	}
	return c.tokenGrant(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {session.RefreshToken},
	})
}

func (c *Client) tokenGrant(ctx context.Context, form url.Values) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url("/auth/token", nil), strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, &errs.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, transportError(resp)
	}

	var session Session
	if err := render.DecodeJSON(resp.Body, &session); err != nil {
		return Session{}, &errs.TransportError{Status: resp.StatusCode, Err: err}
	}
	if session.Token == "" {
		return Session{}, &errs.TransportError{Status: resp.StatusCode, Detail: "no access token in response"}
	}
	return session, nil
}
