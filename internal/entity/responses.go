package entity

import "strings"

type Response struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// Meaningful reports whether the answer has any non-whitespace content
func (r Response) Meaningful() bool {
	return strings.TrimSpace(r.Text) != ""
}

// ResponseMap keeps answers keyed by question id in first-insertion order.
// The zero value is ready to use.
type ResponseMap struct {
	order   []string
	answers map[string]string
}

func NewResponseMap(responses ...Response) *ResponseMap {
	m := &ResponseMap{}
	for _, r := range responses {
		m.Set(r.QuestionID, r.Text)
	}
	return m
}

// Set inserts or replaces an answer. Replacing keeps the original position.
func (m *ResponseMap) Set(questionID, text string) {
	if m.answers == nil {
		m.answers = make(map[string]string)
	}
	if _, ok := m.answers[questionID]; !ok {
		m.order = append(m.order, questionID)
	}
	m.answers[questionID] = text
}

func (m *ResponseMap) Get(questionID string) (string, bool) {
	if m == nil {
		return "", false
	}
	text, ok := m.answers[questionID]
	return text, ok
}

func (m *ResponseMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

func (m *ResponseMap) All() []Response {
	if m == nil {
		return nil
	}
	out := make([]Response, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, Response{QuestionID: id, Text: m.answers[id]})
	}
	return out
}

func (m *ResponseMap) Meaningful() []Response {
	return MeaningfulResponses(m.All())
}

// MeaningfulResponses keeps the order of rs and drops whitespace-only answers
func MeaningfulResponses(rs []Response) []Response {
	out := make([]Response, 0, len(rs))
	for _, r := range rs {
		if r.Meaningful() {
			out = append(out, r)
		}
	}
	return out
}
