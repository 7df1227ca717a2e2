package mathmark

import "regexp"

// SpanKind classifies a region of mixed text.
type SpanKind int

const (
	// SpanText is literal prose, escaped on output.
	SpanText SpanKind = iota
	// SpanInlineMath is a $...$ region.
	SpanInlineMath
	// SpanDisplayMath is a $$...$$ region.
	SpanDisplayMath
)

// String returns the kind name.
func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanInlineMath:
		return "inline"
	case SpanDisplayMath:
		return "display"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) of the scanned string.
// Source is the exact substring, delimiters included. Expr holds the raw,
// unnormalized interior for math spans and is empty for text spans.
type Span struct {
	Kind   SpanKind
	Start  int
	End    int
	Source string
	Expr   string
}

// IsMath reports whether the span holds a math expression.
func (s Span) IsMath() bool {
	return s.Kind == SpanInlineMath || s.Kind == SpanDisplayMath
}

// DisplayMode reports whether the span typesets as a block.
func (s Span) DisplayMode() bool {
	return s.Kind == SpanDisplayMath
}

var (
	// displayMathPattern matches the shortest non-empty run between two
	// "$$" pairs, newlines included.
	displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

	// inlineMathPattern matches the shortest non-empty, dollar-free run
	// between two single "$".
	inlineMathPattern = regexp.MustCompile(`\$([^$]+?)\$`)
)

// Scan splits raw text into text and math spans. Display math is found
// first; the text around each display span is then scanned for inline math.
// Unterminated delimiters never match and stay in text spans.
//
// The returned spans are ordered, non-overlapping and cover text exactly.
// Empty text regions produce no span.
func Scan(text string) []Span {
	var spans []Span
	last := 0
	for _, m := range displayMathPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = scanInline(spans, text, last, m[0])
		spans = append(spans, Span{
			Kind:   SpanDisplayMath,
			Start:  m[0],
			End:    m[1],
			Source: text[m[0]:m[1]],
			Expr:   text[m[2]:m[3]],
		})
		last = m[1]
	}
	return scanInline(spans, text, last, len(text))
}

// scanInline appends the spans of text[start:end], a region known to hold
// no display math, with offsets relative to the whole text.
func scanInline(spans []Span, text string, start, end int) []Span {
	if start >= end {
		return spans
	}
	chunk := text[start:end]
	last := 0
	for _, m := range inlineMathPattern.FindAllStringSubmatchIndex(chunk, -1) {
		spans = appendText(spans, text, start+last, start+m[0])
		spans = append(spans, Span{
			Kind:   SpanInlineMath,
			Start:  start + m[0],
			End:    start + m[1],
			Source: chunk[m[0]:m[1]],
			Expr:   chunk[m[2]:m[3]],
		})
		last = m[1]
	}
	return appendText(spans, text, start+last, end)
}

func appendText(spans []Span, text string, start, end int) []Span {
	if start >= end {
		return spans
	}
	return append(spans, Span{
		Kind:   SpanText,
		Start:  start,
		End:    end,
		Source: text[start:end],
	})
}
