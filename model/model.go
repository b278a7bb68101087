package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cloudspace-consulting/survey-api/store"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Question struct {
	ID       string   `json:"id" validate:"required"`
	Text     string   `json:"text" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   string     `json:"created_at"`
	Responses   int        `json:"responses"`
}

type SurveyCreate struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Questions   []Question `json:"questions" validate:"dive"`
}

func (s SurveyCreate) Validate() error {
	// an empty question list is fine, a missing one is not
	if s.Questions == nil {
		return errors.New("questions is required")
	}
	return validate.Struct(s)
}

// Survey materializes the survey as it will be stored, server generated
// fields included.
func (s SurveyCreate) Survey(id, createdAt string) Survey {
	return Survey{
		ID:          id,
		Title:       s.Title,
		Description: s.description(),
		Questions:   s.Questions,
		CreatedAt:   createdAt,
	}
}

// Item flattens the payload into a storage document.
func (s SurveyCreate) Item(id, createdAt string) store.Item {
	questions := make([]any, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = q.attr()
	}

	return store.SafeItem(store.Item{
		"id":          id,
		"title":       s.Title,
		"description": s.description(),
		"questions":   questions,
		"created_at":  createdAt,
		"responses":   0,
	})
}

func (s SurveyCreate) description() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

func (q Question) attr() map[string]any {
	attr := map[string]any{
		"id":       q.ID,
		"text":     q.Text,
		"type":     q.Type,
		"required": q.Required,
		"options":  nil,
	}
	if q.Options != nil {
		attr["options"] = q.Options
	}
	return attr
}

type Answer struct {
	QuestionID string      `json:"question_id" validate:"required"`
	Answer     AnswerValue `json:"answer"`
}

type SurveyResponse struct {
	ID        string   `json:"id"`
	SurveyID  string   `json:"survey_id"`
	Answers   []Answer `json:"answers"`
	CreatedAt string   `json:"created_at"`
}

type SurveyResponseCreate struct {
	SurveyID string   `json:"survey_id" validate:"required"`
	Answers  []Answer `json:"answers" validate:"dive"`
}

func (r SurveyResponseCreate) Validate() error {
	if r.Answers == nil {
		return errors.New("answers is required")
	}
	for _, a := range r.Answers {
		if a.Answer.IsZero() {
			return errors.New("answer is required")
		}
	}
	return validate.Struct(r)
}

// Response materializes the response as it will be stored. The survey id is
// the path supplied one, not the body value.
func (r SurveyResponseCreate) Response(id, surveyID, createdAt string) SurveyResponse {
	return SurveyResponse{
		ID:        id,
		SurveyID:  surveyID,
		Answers:   r.Answers,
		CreatedAt: createdAt,
	}
}

// Item flattens the payload into a storage document.
func (r SurveyResponseCreate) Item(id, surveyID, createdAt string) store.Item {
	answers := make([]any, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = map[string]any{
			"question_id": a.QuestionID,
			"answer":      a.Answer.attr(),
		}
	}

	return store.SafeItem(store.Item{
		"id":         id,
		"survey_id":  surveyID,
		"answers":    answers,
		"created_at": createdAt,
	})
}

// Timestamp returns the current local time in ISO-8601, the format every
// created_at field carries.
func Timestamp() string {
	return time.Now().Format("2006-01-02T15:04:05.999999")
}

// SurveyFromItem decodes a stored document back into a Survey. Documents from
// older deployments may carry questions as a JSON encoded string; those are
// decoded back into structured form first.
func SurveyFromItem(item store.Item) (s Survey, err error) {
	item, err = decodeStringField(item, "questions")
	if err != nil {
		return
	}
	err = remarshal(item, &s)
	return
}

// ResponseFromItem decodes a stored document back into a SurveyResponse, with
// the same defensive decoding of string encoded answers.
func ResponseFromItem(item store.Item) (r SurveyResponse, err error) {
	item, err = decodeStringField(item, "answers")
	if err != nil {
		return
	}
	err = remarshal(item, &r)
	return
}

func decodeStringField(item store.Item, field string) (store.Item, error) {
	encoded, ok := item[field].(string)
	if !ok {
		return item, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		return nil, err
	}

	out := make(store.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	out[field] = decoded
	return out, nil
}

func remarshal(item store.Item, dst any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
