package client

import (
	"context"
	"net/http"

	"github.com/BryanM518/encuestas-cli/model"
)

// CreateSurvey persists a new survey and returns the saved document with
// the identifiers the backend assigned.
func (c *Client) CreateSurvey(ctx context.Context, session Session, s model.Survey) (model.Survey, error) {
	if err := authed(session); err != nil {
		return model.Survey{}, err
	}
	var saved model.Survey
	err := c.doJSON(ctx, http.MethodPost, "/surveys/", session, nil, s, &saved)
	return saved, err
}

// ReplaceSurvey overwrites the survey document (last write wins) and
// returns the saved revision.
func (c *Client) ReplaceSurvey(ctx context.Context, session Session, s model.Survey) (model.Survey, error) {
	if err := authed(session); err != nil {
		return model.Survey{}, err
	}
	var saved model.Survey
	err := c.doJSON(ctx, http.MethodPut, "/surveys/"+s.ID, session, nil, s, &saved)
	return saved, err
}

// GetSurvey fetches the owner view of a survey.
func (c *Client) GetSurvey(ctx context.Context, session Session, id string) (model.Survey, error) {
	if err := authed(session); err != nil {
		return model.Survey{}, err
	}
	var s model.Survey
	err := c.doJSON(ctx, http.MethodGet, "/surveys/"+id, session, nil, nil, &s)
	return s, err
}

// GetPublicSurvey fetches the respondent view, which omits authorship
// and internal metadata and carries the derived status.
func (c *Client) GetPublicSurvey(ctx context.Context, id string) (model.Survey, error) {
	var s model.Survey
	err := c.doJSON(ctx, http.MethodGet, "/surveys/public/"+id, Session{}, nil, nil, &s)
	return s, err
}

// ListSurveys returns the surveys owned by the session's user.
func (c *Client) ListSurveys(ctx context.Context, session Session) ([]model.Survey, error) {
	if err := authed(session); err != nil {
		return nil, err
	}
	var surveys []model.Survey
	err := c.doJSON(ctx, http.MethodGet, "/surveys/", session, nil, nil, &surveys)
	return surveys, err
}

func (c *Client) DeleteSurvey(ctx context.Context, session Session, id string) error {
	if err := authed(session); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/surveys/"+id, session, nil, nil, nil)
}

// ListVersions returns the archived revisions of a survey.
func (c *Client) ListVersions(ctx context.Context, session Session, id string) ([]model.SurveyVersion, error) {
	if err := authed(session); err != nil {
		return nil, err
	}
	var versions []model.SurveyVersion
	err := c.doJSON(ctx, http.MethodGet, "/surveys/"+id+"/versions", session, nil, nil, &versions)
	return versions, err
}
