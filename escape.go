package mathmark

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five characters that are significant in HTML text
// and quoted attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
