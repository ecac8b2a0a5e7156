package mockapi

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/BryanM518/encuestas-cli/httpx"
	"github.com/BryanM518/encuestas-cli/model"
)

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	responses := append([]model.Response(nil), s.responses[id]...)
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "stats.get", id)
		return
	}

	filters := parseFilters(r.URL.Query())
	filtered := responses[:0:0]
	for _, resp := range responses {
		if matchesAll(resp, filters) {
			filtered = append(filtered, resp)
		}
	}

	render.JSON(w, r, computeStats(rec.survey, filtered))
}

// parseFilters reads the positionally indexed filter parameters, in
// index order, stopping at the first missing index.
func parseFilters(query url.Values) []model.StatsFilter {
	var filters []model.StatsFilter
	for i := 0; ; i++ {
		qid := query.Get(fmt.Sprintf("filter_qid_%d", i))
		if qid == "" {
			return filters
		}
		filters = append(filters, model.StatsFilter{
			QuestionID: qid,
			Value:      query.Get(fmt.Sprintf("filter_value_%d", i)),
			Operator:   query.Get(fmt.Sprintf("filter_operator_%d", i)),
			Type:       query.Get(fmt.Sprintf("filter_type_%d", i)),
		})
	}
}

func matchesAll(resp model.Response, filters []model.StatsFilter) bool {
	for _, f := range filters {
		if !matches(resp.Answers[f.QuestionID], f) {
			return false
		}
	}
	return true
}

func matches(answer any, f model.StatsFilter) bool {
	if f.Type == model.TypeNumberInput {
		got, err1 := toFloat(answer)
		want, err2 := strconv.ParseFloat(f.Value, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		switch f.Operator {
		case "not_equals":
			return got != want
		case "gt":
			return got > want
		case "lt":
			return got < want
		default:
			return got == want
		}
	}

	values := stringValues(answer)
	switch f.Operator {
	case "not_equals", "not_in":
		for _, v := range values {
			if v == f.Value {
				return false
			}
		}
		return true
	default: // equals / in
		for _, v := range values {
			if v == f.Value {
				return true
			}
		}
		return false
	}
}

func computeStats(survey model.Survey, responses []model.Response) model.SurveyStats {
	stats := model.SurveyStats{}
	for _, q := range survey.Questions {
		qs := model.QuestionStats{Text: q.Text, Type: q.Type}

		var numbers []float64
		for _, resp := range responses {
			answer, ok := resp.Answers[q.ID]
			if !ok {
				continue
			}

			switch q.Type {
			case model.TypeMultipleChoice, model.TypeCheckboxGroup, model.TypeSatisfactionScale:
				if qs.Options == nil {
					qs.Options = map[string]int{}
				}
				for _, v := range stringValues(answer) {
					qs.Options[v]++
				}
			case model.TypeNumberInput:
				n, err := toFloat(answer)
				if err != nil {
					continue
				}
				numbers = append(numbers, n)
				qs.Responses = append(qs.Responses, answer)
			default:
				qs.Responses = append(qs.Responses, answer)
			}
		}

		if len(numbers) > 0 {
			qs.Avg, qs.Median, qs.Min, qs.Max = aggregate(numbers)
			qs.Histogram = map[string]int{}
			for _, n := range numbers {
				qs.Histogram[strconv.FormatFloat(n, 'f', -1, 64)]++
			}
		}

		stats[q.ID] = qs
	}
	return stats
}

func aggregate(numbers []float64) (avg, median, min, max *float64) {
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	var sum float64
	for _, n := range sorted {
		sum += n
	}
	a := sum / float64(len(sorted))

	var m float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		m = sorted[mid]
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	return &a, &m, &lo, &hi
}

func stringValues(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(e)
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
