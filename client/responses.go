package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
)

// SubmitResponse sends one respondent's answers. The wire payload is
// flat: responder_email plus one entry per answered question ID. No
// session is required, responding is public.
func (c *Client) SubmitResponse(ctx context.Context, surveyID, responderEmail string, answers model.Answers) error {
	payload := map[string]any{
		"responder_email": responderEmail,
	}
	for qid, value := range answers {
		payload[qid] = value
	}
	return c.doJSON(ctx, http.MethodPost, "/surveys/"+surveyID+"/responses", Session{}, nil, payload, nil)
}

// ListResponses returns the collected responses for a survey.
func (c *Client) ListResponses(ctx context.Context, session Session, surveyID string) ([]model.Response, error) {
	if err := authed(session); err != nil {
		return nil, err
	}
	var responses []model.Response
	err := c.doJSON(ctx, http.MethodGet, "/surveys/"+surveyID+"/responses", session, nil, nil, &responses)
	return responses, err
}

// ExportResponses streams the responses in the requested format, one of
// "csv" or "xlsx". The caller owns the returned body.
func (c *Client) ExportResponses(ctx context.Context, session Session, surveyID, format string) (io.ReadCloser, error) {
	if err := authed(session); err != nil {
		return nil, err
	}
	if format != "csv" && format != "xlsx" {
		return nil, errs.Validation("unsupported export format %q", format)
	}
	return c.doRaw(ctx, "/surveys/"+surveyID+"/export", session, url.Values{"format": {format}})
}

// FinalReport streams the rendered report document for a survey.
func (c *Client) FinalReport(ctx context.Context, session Session, surveyID string) (io.ReadCloser, error) {
	if err := authed(session); err != nil {
		return nil, err
	}
	return c.doRaw(ctx, "/surveys/"+surveyID+"/final-report", session, nil)
}
