package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-mathmark/internal/assets"
	"github.com/alnah/go-mathmark/internal/quiz"
)

// Sentinel errors for sheet building.
var (
	ErrTemplateParse   = errors.New("sheet template parsing failed")
	ErrTemplateRender  = errors.New("sheet template rendering failed")
	ErrIntroConversion = errors.New("intro conversion failed")
)

// Sanitizer restricts HTML to an allow-listed subset.
type Sanitizer interface {
	Sanitize(html string) string
}

// Document is the content of one sheet.
type Document struct {
	Title       string
	Intro       string // Markdown
	Date        string
	Questions   []quiz.Rendered
	ShowAnswers bool
	ExtraCSS    string // injected after the sheet stylesheet
}

// pageData is the sheet template's dot.
type pageData struct {
	Title       string
	Intro       template.HTML
	Date        string
	Questions   []questionData
	ShowAnswers bool
}

type questionData struct {
	ID          int
	Question    template.HTML
	Choices     []template.HTML
	Explanation template.HTML
}

// Builder renders Documents to standalone HTML. It is safe for concurrent use.
type Builder struct {
	tmpl      *template.Template
	css       string
	codeCSS   string
	markdown  goldmark.Markdown
	sanitizer Sanitizer
}

// NewBuilder loads the sheet template and the named stylesheet from loader.
// An empty style selects assets.DefaultStyleName.
func NewBuilder(loader assets.AssetLoader, style string, sanitizer Sanitizer) (*Builder, error) {
	if style == "" {
		style = assets.DefaultStyleName
	}

	src, err := loader.LoadTemplate(assets.SheetTemplateName)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(assets.SheetTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	css, err := loader.LoadStyle(style)
	if err != nil {
		return nil, err
	}

	codeCSS, err := highlightCSS()
	if err != nil {
		return nil, err
	}

	return &Builder{
		tmpl:      tmpl,
		css:       css,
		codeCSS:   codeCSS,
		markdown:  newMarkdown(),
		sanitizer: sanitizer,
	}, nil
}

// Build renders doc as an HTML5 document with its stylesheets inlined.
func (b *Builder) Build(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	intro, err := b.convertIntro(doc.Intro)
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:       doc.Title,
		Intro:       trusted(intro),
		Date:        doc.Date,
		Questions:   make([]questionData, len(doc.Questions)),
		ShowAnswers: doc.ShowAnswers,
	}
	for i, q := range doc.Questions {
		data.Questions[i] = toQuestionData(q)
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := InjectCSS(buf.String(), b.css)
	if hasHighlightedCode(intro) {
		out = InjectCSS(out, b.codeCSS)
	}
	return InjectCSS(out, doc.ExtraCSS), nil
}

// toQuestionData marks rendered fields as trusted HTML.
func toQuestionData(q quiz.Rendered) questionData {
	choices := make([]template.HTML, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = trusted(c)
	}
	return questionData{
		ID:          q.ID,
		Question:    trusted(q.Question),
		Choices:     choices,
		Explanation: trusted(q.Explanation),
	}
}

// trusted wraps HTML that a sanitizer has already processed.
func trusted(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- sanitized upstream
}
