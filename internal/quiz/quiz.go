// Package quiz loads question banks from CSV and renders their text fields
// to HTML.
//
// A bank has a header row. Recognized columns, first non-empty alias wins:
//
//	question     question, Question
//	choices      choices, Choices
//	explanation  explanation, Explanation, explain, ExplanationText
//
// Other columns are ignored. A question's ID is its 0-based position among
// the non-blank data rows.
package quiz

import "errors"

// Sentinel errors for question banks.
var (
	ErrNoQuestionColumn = errors.New("no question column in header")
	ErrReadCSV          = errors.New("failed to read question bank")
	ErrQuestionNotFound = errors.New("question not found")
)

// Question is one raw row of a question bank.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Explanation string   `json:"explanation"`
}

// Rendered is a Question whose text fields hold sanitized HTML.
type Rendered struct {
	ID          int      `json:"id" yaml:"id"`
	Question    string   `json:"question" yaml:"question"`
	Choices     []string `json:"choices" yaml:"choices"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// TextRenderer converts mixed prose and math to HTML.
type TextRenderer interface {
	Render(text string) string
}

// ByID returns the question with the given ID.
// Returns ErrQuestionNotFound if no question has it.
func ByID(questions []Question, id int) (Question, error) {
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrQuestionNotFound
}
