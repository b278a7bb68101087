package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// AnswerValue is the value of a single answer: free text for open questions,
// an ordered list of selected options for multi-choice ones. It keeps the two
// shapes apart so an answer round-trips in the form it was submitted.
type AnswerValue struct {
	text    string
	choices []string
	multi   bool
	set     bool
}

func Text(s string) AnswerValue {
	return AnswerValue{text: s, set: true}
}

func Choices(ss ...string) AnswerValue {
	return AnswerValue{choices: ss, multi: true, set: true}
}

func (v AnswerValue) IsZero() bool {
	return !v.set
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.choices)
	}
	return json.Marshal(v.text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	// unmarshalling null into a string is a silent no-op
	if bytes.Equal(data, []byte("null")) {
		return errors.New("answer must be a string or a list of strings")
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}

	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return errors.New("answer must be a string or a list of strings")
	}
	*v = Choices(ss...)
	return nil
}

func (v AnswerValue) attr() any {
	if v.multi {
		out := make([]any, len(v.choices))
		for i, c := range v.choices {
			out[i] = c
		}
		return out
	}
	return v.text
}
