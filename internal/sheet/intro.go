package sheet

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// highlightStyle colors fenced code in introductions.
const highlightStyle = "github"

// chromaClass marks highlighted code blocks in converted HTML.
const chromaClass = `class="chroma"`

// newMarkdown returns the converter used for sheet introductions.
// Raw HTML in the source is omitted, not passed through. Fenced code is
// highlighted with CSS classes; see highlightCSS.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
}

// highlightCSS returns the stylesheet for the classes newMarkdown emits.
func highlightCSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(highlightStyle)); err != nil {
		return "", fmt.Errorf("%w: highlight stylesheet: %v", ErrIntroConversion, err)
	}
	return buf.String(), nil
}

// convertIntro converts Markdown source to a sanitized HTML fragment.
func (b *Builder) convertIntro(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := b.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntroConversion, err)
	}
	return b.sanitizer.Sanitize(buf.String()), nil
}

// hasHighlightedCode reports whether converted HTML needs highlightCSS.
func hasHighlightedCode(fragment string) bool {
	return strings.Contains(fragment, chromaClass)
}
