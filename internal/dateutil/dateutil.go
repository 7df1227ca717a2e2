// Package dateutil resolves the date printed on a sheet header.
//
// A date value is either literal text, shown as given, or "auto" with an
// optional layout: "auto", "auto:DD/MM/YYYY", "auto:long". Layouts use the
// tokens YYYY, YY, MMMM, MMM, MM, M, DD and D; text inside [brackets] is
// kept verbatim.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates a malformed "auto" value or layout.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxLayoutLength bounds a layout.
const MaxLayoutLength = 50

// DefaultLayout is the layout of a bare "auto".
const DefaultLayout = "YYYY-MM-DD"

const autoKeyword = "auto"

// Presets name common layouts.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens are tried longest first.
var tokens = [...]struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// GoLayout translates a token layout to a time.Format layout.
func GoLayout(layout string) (string, error) {
	switch {
	case layout == "":
		return "", fmt.Errorf("%w: empty layout", ErrInvalidDateFormat)
	case len(layout) > MaxLayoutLength:
		return "", fmt.Errorf("%w: layout longer than %d characters", ErrInvalidDateFormat, MaxLayoutLength)
	}

	var b strings.Builder
	rest := layout
	for rest != "" {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, layout)
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		rest = writeToken(&b, rest)
	}
	return b.String(), nil
}

// writeToken writes the translation of the token starting s, or its first
// byte, and returns what follows.
func writeToken(b *strings.Builder, s string) string {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return s[len(t.token):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Resolve returns value with any "auto" form replaced by now in its layout.
// Other values, including the empty string, pass through unchanged.
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoKeyword) {
		return value, nil
	}

	layout := DefaultLayout
	if lower != autoKeyword {
		suffix, ok := strings.CutPrefix(value[len(autoKeyword):], ":")
		if !ok || suffix == "" {
			return "", fmt.Errorf("%w: %q (want auto or auto:LAYOUT)", ErrInvalidDateFormat, value)
		}
		layout = suffix
		if preset, ok := Presets[strings.ToLower(suffix)]; ok {
			layout = preset
		}
	}

	goLayout, err := GoLayout(layout)
	if err != nil {
		return "", err
	}
	return now.Format(goLayout), nil
}
