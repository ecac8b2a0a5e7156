package model

import "time"

const (
	StatusCreated   = "created"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

const (
	TypeTextInput         = "text_input"
	TypeMultipleChoice    = "multiple_choice"
	TypeSatisfactionScale = "satisfaction_scale"
	TypeNumberInput       = "number_input"
	TypeCheckboxGroup     = "checkbox_group"
)

const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpIn        = "in"
	OpNotIn     = "not_in"
)

type Survey struct {
	ID             string     `json:"_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Questions      []Question `json:"questions"`
	Status         string     `json:"status,omitempty"`
	IsPublic       bool       `json:"is_public"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	LogoFileID     string     `json:"logo_file_id,omitempty"`
	PrimaryColor   string     `json:"primary_color,omitempty"`
	SecondaryColor string     `json:"secondary_color,omitempty"`
	FontFamily     string     `json:"font_family,omitempty"`
	Version        int        `json:"version,omitempty"`
}

type Question struct {
	ID        string               `json:"_id,omitempty"`
	Type      string               `json:"type"`
	Text      string               `json:"text"`
	Options   []string             `json:"options,omitempty"`
	Required  bool                 `json:"is_required"`
	VisibleIf *VisibilityCondition `json:"visible_if,omitempty"`
}

// VisibilityCondition makes a question's visibility depend on the answer
// given to an earlier question. Value is a scalar or a sequence.
type VisibilityCondition struct {
	QuestionID string `json:"question_id"`
	Operator   string `json:"operator"`
	Value      any    `json:"value"`
}

// Answers maps question ID to the current answer value: a []string for
// checkbox_group questions, a scalar string otherwise.
type Answers map[string]any

type Response struct {
	ID             string         `json:"_id,omitempty"`
	ResponderEmail string         `json:"responder_email"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	Answers        map[string]any `json:"answers"`
}

// QuestionStats is the aggregated view the backend computes per question.
type QuestionStats struct {
	Text      string         `json:"text"`
	Type      string         `json:"type"`
	Options   map[string]int `json:"options,omitempty"`
	Responses []any          `json:"responses,omitempty"`
	Avg       *float64       `json:"avg,omitempty"`
	Median    *float64       `json:"median,omitempty"`
	Min       *float64       `json:"min,omitempty"`
	Max       *float64       `json:"max,omitempty"`
	Histogram map[string]int `json:"histogram,omitempty"`
}

type SurveyStats map[string]QuestionStats

// StatsFilter narrows statistics to responses matching a condition on one
// question. Filters are positionally indexed on the wire.
type StatsFilter struct {
	QuestionID string
	Type       string
	Operator   string
	Value      string
}

// SurveyVersion is one archived revision of a survey document.
type SurveyVersion struct {
	Version    int       `json:"version"`
	ModifiedAt time.Time `json:"modified_at"`
	Survey     Survey    `json:"survey"`
}

// UsesOptions reports whether the question type carries an option list.
// Options on any other type are ignored and stripped before persisting.
func (q Question) UsesOptions() bool {
	return q.Type == TypeMultipleChoice || q.Type == TypeCheckboxGroup
}
