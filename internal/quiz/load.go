package quiz

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column aliases, in lookup order.
var (
	questionColumns    = []string{"question", "Question"}
	choicesColumns     = []string{"choices", "Choices"}
	explanationColumns = []string{"explanation", "Explanation", "explain", "ExplanationText"}
)

// defaultChoices stands in for a missing or empty choices cell.
const defaultChoices = "[]"

const utf8BOM = "\ufeff"

// Load reads a question bank. Blank rows are skipped.
// Returns ErrNoQuestionColumn if the header has no question column and
// ErrReadCSV on malformed CSV. An empty input yields no questions.
func Load(r io.Reader) ([]Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: header: %v", ErrReadCSV, err)
	}

	cols := indexColumns(header)
	if len(cols.question) == 0 {
		return nil, fmt.Errorf("%w: found %s", ErrNoQuestionColumn, strings.Join(header, ", "))
	}

	var questions []Question
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSV, err)
		}
		if isBlank(record) {
			continue
		}

		choicesRaw := field(record, cols.choices)
		if choicesRaw == "" {
			choicesRaw = defaultChoices
		}

		questions = append(questions, Question{
			ID:          len(questions),
			Question:    field(record, cols.question),
			Choices:     ParseChoices(choicesRaw),
			Explanation: field(record, cols.explanation),
		})
	}
	return questions, nil
}

// LoadFile reads a question bank from path.
func LoadFile(path string) ([]Question, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided bank path
	if err != nil {
		return nil, fmt.Errorf("opening question bank: %w", err)
	}
	defer f.Close()

	questions, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return questions, nil
}

// columns holds the record indexes of each alias present in the header, in
// alias order.
type columns struct {
	question    []int
	choices     []int
	explanation []int
}

func indexColumns(header []string) columns {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	lookup := func(aliases []string) []int {
		var idx []int
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				idx = append(idx, i)
			}
		}
		return idx
	}

	return columns{
		question:    lookup(questionColumns),
		choices:     lookup(choicesColumns),
		explanation: lookup(explanationColumns),
	}
}

// field returns the first non-empty value among the given columns.
func field(record []string, idx []int) string {
	for _, i := range idx {
		if i < len(record) && record[i] != "" {
			return record[i]
		}
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
