package client

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/render"

	"github.com/BryanM518/encuestas-cli/errs"
)

// UploadLogo uploads a logo asset and returns the opaque file reference
// the backend assigned.
func (c *Client) UploadLogo(ctx context.Context, session Session, filename string, content io.Reader) (string, error) {
	if err := authed(session); err != nil {
		return "", err
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/surveys/upload-logo", nil), pr)
	if err != nil {
		return "", &errs.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", transportError(resp)
	}

	var body struct {
		FileID string `json:"file_id"`
	}
	if err := render.DecodeJSON(resp.Body, &body); err != nil {
		return "", &errs.TransportError{Status: resp.StatusCode, Err: err}
	}
	return body.FileID, nil
}

// Logo streams a previously uploaded logo asset.
func (c *Client) Logo(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return c.doRaw(ctx, "/surveys/files/"+fileID, Session{}, nil)
}
