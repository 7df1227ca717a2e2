package quiz

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	doubleQuotedPattern = regexp.MustCompile(`"([^"]+)"`)
	singleQuotedPattern = regexp.MustCompile(`'([^']+)'`)
)

// ParseChoices decodes a choices cell. Cells are usually JSON arrays, but
// spreadsheets mangle them, so decoding falls back in order:
//
//  1. a JSON array, after collapsing CSV-doubled quotes ("" to ");
//  2. every "double-quoted" run, or failing that every 'single-quoted' run;
//  3. the cell without surrounding brackets, split on commas, each item
//     trimmed and stripped of surrounding double quotes.
//
// A blank cell has no choices.
func ParseChoices(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if choices, ok := decodeJSONArray(strings.ReplaceAll(raw, `""`, `"`)); ok {
		return choices
	}

	if m := doubleQuotedPattern.FindAllStringSubmatch(raw, -1); m != nil {
		return submatches(m)
	}
	if m := singleQuotedPattern.FindAllStringSubmatch(raw, -1); m != nil {
		return submatches(m)
	}

	inner := strings.TrimSpace(raw)
	inner = strings.TrimSpace(strings.TrimPrefix(inner, "["))
	inner = strings.TrimSpace(strings.TrimSuffix(inner, "]"))
	parts := strings.Split(inner, ",")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, `"`)
		p = strings.TrimSuffix(p, `"`)
		choices = append(choices, p)
	}
	return choices
}

// decodeJSONArray decodes a JSON array, turning scalar items into strings.
func decodeJSONArray(s string) ([]string, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil || dec.More() {
		return nil, false
	}

	choices := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			choices = append(choices, v)
		case nil:
			choices = append(choices, "")
		case json.Number, bool:
			choices = append(choices, fmt.Sprint(v))
		default:
			// Nested arrays and objects are not choices.
			return nil, false
		}
	}
	return choices, true
}

func submatches(m [][]string) []string {
	out := make([]string, len(m))
	for i, sm := range m {
		out[i] = sm[1]
	}
	return out
}
