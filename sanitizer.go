package mathmark

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer restricts HTML to an allow-listed set of tags and attributes.
// Implementations never fail and must be safe for concurrent use.
type Sanitizer interface {
	Sanitize(html string) string
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(html string) string

// Sanitize calls f(html).
func (f SanitizerFunc) Sanitize(html string) string {
	return f(html)
}

var (
	_ Sanitizer = SanitizerFunc(nil)
	_ Sanitizer = (*PolicySanitizer)(nil)
)

// mathMLElements are the presentation MathML elements typesetters emit.
var mathMLElements = []string{
	"math", "semantics", "annotation",
	"mrow", "mi", "mn", "mo", "ms", "mtext", "mspace",
	"msup", "msub", "msubsup", "mfrac", "msqrt", "mroot",
	"mover", "munder", "munderover",
	"mtable", "mtr", "mtd",
	"mstyle", "mpadded", "mphantom", "menclose",
}

// mathMLAttributes are the MathML attributes allowed on mathMLElements.
var mathMLAttributes = []string{
	"xmlns", "display", "displaystyle", "mathvariant", "encoding",
	"stretchy", "fence", "separator", "largeop", "movablelimits",
	"minsize", "maxsize", "accent", "accentunder", "linethickness",
	"width", "height", "depth", "lspace", "rspace",
	"rowspacing", "columnspacing", "columnalign", "columnlines",
	"scriptlevel", "voffset", "notation",
}

// ariaBool matches the values of aria-hidden.
var ariaBool = regexp.MustCompile(`^(true|false)$`)

// PolicySanitizer sanitizes HTML with a bluemonday policy.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns the renderer's default sanitizer: bluemonday's
// user-generated-content policy, plus span, div and MathML elements, and
// class and style attributes on every element. extraTags are allowed in
// addition, without attributes beyond class and style.
func NewSanitizer(extraTags ...string) *PolicySanitizer {
	p := bluemonday.UGCPolicy()

	containers := append([]string{"span", "div"}, mathMLElements...)
	containers = append(containers, extraTags...)
	p.AllowElements(containers...)
	// Elements stripped of every attribute would otherwise be dropped.
	p.AllowNoAttrs().OnElements(containers...)

	p.AllowAttrs("class", "style").Globally()
	p.AllowAttrs(mathMLAttributes...).OnElements(mathMLElements...)
	p.AllowAttrs("aria-hidden").Matching(ariaBool).OnElements("span")

	return &PolicySanitizer{policy: p}
}

// Sanitize removes disallowed tags and attributes from html. Double quotes
// come out as &quot;, the entity EscapeHTML uses, so sanitized prose is
// byte-identical to its escaped form.
func (s *PolicySanitizer) Sanitize(html string) string {
	return strings.ReplaceAll(s.policy.Sanitize(html), "&#34;", "&quot;")
}
