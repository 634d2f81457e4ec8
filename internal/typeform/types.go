// Package typeform fetches completed form responses and maps them into
// Submission entities.
package typeform

import (
	"encoding/json"
	"strconv"
)

// Response is one completed form response: a stable identifier plus the
// ordered list of answers. Raw holds the provider item verbatim.
type Response struct {
	ResponseID string          `json:"response_id"`
	Token      string          `json:"token"`
	Answers    []Answer        `json:"answers"`
	Raw        json.RawMessage `json:"-"`
}

// Answer is one answer entry. Exactly one value field is populated, tagged by
// Type; pointers preserve the provider's key-presence semantics.
type Answer struct {
	Field struct {
		ID  string `json:"id"`
		Ref string `json:"ref"`
	} `json:"field"`
	Type        string        `json:"type"`
	Text        *string       `json:"text,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Choice      *choiceValue  `json:"choice,omitempty"`
	Choices     *choicesValue `json:"choices,omitempty"`
	Email       *string       `json:"email,omitempty"`
	URL         *string       `json:"url,omitempty"`
	PhoneNumber *string       `json:"phone_number,omitempty"`
}

type choiceValue struct {
	Label string `json:"label"`
}

type choicesValue struct {
	Labels []string `json:"labels"`
}

// Value is the single extracted answer value. Multi-choice answers carry the
// label list; everything else is a scalar string.
type Value struct {
	Text   string
	Labels []string
	IsList bool
}

// Value extracts the populated value from the answer. The first populated
// kind wins; an answer with no recognized kind reports ok=false.
func (a Answer) Value() (Value, bool) {
	switch {
	case a.Text != nil:
		return Value{Text: *a.Text}, true
	case a.Number != nil:
		return Value{Text: strconv.FormatFloat(*a.Number, 'f', -1, 64)}, true
	case a.Choice != nil:
		return Value{Text: a.Choice.Label}, true
	case a.Choices != nil:
		return Value{Labels: a.Choices.Labels, IsList: true}, true
	case a.Email != nil:
		return Value{Text: *a.Email}, true
	case a.URL != nil:
		return Value{Text: *a.URL}, true
	case a.PhoneNumber != nil:
		return Value{Text: *a.PhoneNumber}, true
	}
	return Value{}, false
}
