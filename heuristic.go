package mathmark

import "regexp"

// maxBareMathLength bounds the short math-like test; longer strings need a
// backslash command to be considered bare math.
const maxBareMathLength = 60

var (
	backslashCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+`)
	noSpacesPattern         = regexp.MustCompile(`^\S+$`)
	mathLikePattern         = regexp.MustCompile(`^[\s0-9A-Za-z\\{}^_/+\-()\[\]=:,.;%]+$`)
)

// IsBareMath reports whether normalized text looks like an undelimited math
// expression: either it has a backslash command and no whitespace
// ("5\sqrt{5}", "\frac{7}{9}"), or it is short and built only from
// characters common in math.
//
// This is a fast path only. Short prose such as "(A)" also qualifies; the
// typesetter decides whether it really is math.
func IsBareMath(normalized string) bool {
	hasBackslashCommand := backslashCommandPattern.MatchString(normalized)
	noSpaces := noSpacesPattern.MatchString(normalized)
	shortMathLike := len(normalized) < maxBareMathLength && mathLikePattern.MatchString(normalized)
	return (hasBackslashCommand && noSpaces) || shortMathLike
}
