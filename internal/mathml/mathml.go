// Package mathml typesets a LaTeX math subset as presentation MathML.
//
// It covers what short quiz content uses: numbers, identifiers, operators,
// groups, scripts, fractions, roots, binomials, accents, fonts, text, Greek
// letters, relations, arrows, big operators, named functions, \left/\right
// fences and spacing. Anything else is rejected with ErrParse, which lets
// callers fall back to showing the source.
package mathml

import (
	"errors"
	"html"
	"strings"
)

// Sentinel errors for conversion.
var (
	ErrParse = errors.New("math parse error")
	ErrEmpty = errors.New("empty expression")
)

// mathNamespace is the MathML XML namespace.
const mathNamespace = "http://www.w3.org/1998/Math/MathML"

// Class names on the wrapping span.
const (
	classInline  = "mathmark"
	classDisplay = "mathmark mathmark-display"
)

// Convert typesets src and returns a <span> wrapping a <math> element. The
// original source is kept in an application/x-tex annotation.
func Convert(src string, display bool) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", ErrEmpty
	}

	p := &parser{src: src, display: display}
	row, err := p.parseRow(stopEOF)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(src) * 8)
	if display {
		b.WriteString(`<span class="` + classDisplay + `"><math xmlns="` + mathNamespace + `" display="block">`)
	} else {
		b.WriteString(`<span class="` + classInline + `"><math xmlns="` + mathNamespace + `">`)
	}
	b.WriteString("<semantics><mrow>")
	for _, n := range row {
		b.WriteString(n.markup)
	}
	b.WriteString(`</mrow><annotation encoding="application/x-tex">`)
	b.WriteString(html.EscapeString(src))
	b.WriteString("</annotation></semantics></math></span>")
	return b.String(), nil
}
