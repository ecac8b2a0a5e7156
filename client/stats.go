package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BryanM518/encuestas-cli/model"
)

// GetStats fetches aggregated statistics, optionally narrowed by
// filters. Filter parameters are positionally indexed on the wire:
// filter_qid_0, filter_value_0, filter_operator_0, filter_type_0, ...
func (c *Client) GetStats(ctx context.Context, session Session, surveyID string, filters []model.StatsFilter) (model.SurveyStats, error) {
	if err := authed(session); err != nil {
		return nil, err
	}

	query := url.Values{}
	for i, f := range filters {
		if f.QuestionID == "" || f.Value == "" {
			continue
		}
		query.Set(fmt.Sprintf("filter_qid_%d", i), f.QuestionID)
		query.Set(fmt.Sprintf("filter_value_%d", i), f.Value)
		query.Set(fmt.Sprintf("filter_operator_%d", i), f.Operator)
		query.Set(fmt.Sprintf("filter_type_%d", i), f.Type)
	}

	var stats model.SurveyStats
	err := c.doJSON(ctx, http.MethodGet, "/surveys/"+surveyID+"/stats", session, query, nil, &stats)
	return stats, err
}
