package mathmark

import "strings"

// latexInputReplacer maps characters the typesetters reject to ASCII and
// collapses doubled backslashes left behind by CSV/JSON re-escaping.
// Replacement is a single left-to-right pass, so `\\\\` becomes `\\`.
var latexInputReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"−", "-",
	" ", " ",
	`\\`, `\`,
)

// Normalize prepares text for typesetting: smart quotes, dashes, the Unicode
// minus and non-breaking spaces become their ASCII counterparts, doubled
// backslashes are collapsed, and surrounding whitespace is trimmed.
//
// Text that already satisfies these rules is returned unchanged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(latexInputReplacer.Replace(s))
}
