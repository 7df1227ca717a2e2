package mathmark

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Renderer converts strings mixing prose and LaTeX into sanitized HTML.
// It is safe for concurrent use. Create with NewRenderer.
type Renderer struct {
	typesetter Typesetter
	sanitizer  Sanitizer
	logger     *slog.Logger
	cacheSize  int
	cacheSet   bool
	cache      *renderCache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTypesetter sets the math typesetter. Default: NewBundledKaTeXTypesetter().
func WithTypesetter(t Typesetter) Option {
	return func(r *Renderer) {
		if t != nil {
			r.typesetter = t
		}
	}
}

// WithSanitizer sets the HTML sanitizer. Default: NewSanitizer().
func WithSanitizer(s Sanitizer) Option {
	return func(r *Renderer) {
		if s != nil {
			r.sanitizer = s
		}
	}
}

// WithLogger sets the logger receiving typesetting failures at Debug level.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCache memoizes up to size rendered inputs. Output is unchanged.
func WithCache(size int) Option {
	return func(r *Renderer) {
		r.cacheSize = size
		r.cacheSet = true
	}
}

// NewRenderer creates a Renderer with the bundled KaTeX typesetter and the
// default sanitizer unless options say otherwise.
// Returns ErrInvalidCacheSize if WithCache was given a non-positive size.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	if r.typesetter == nil {
		r.typesetter = NewBundledKaTeXTypesetter()
	}
	if r.sanitizer == nil {
		r.sanitizer = NewSanitizer()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	if r.cacheSet {
		cache, err := newRenderCache(r.cacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}
	return r, nil
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err) // unreachable: no cache configured
	}
	return r
})

// Render renders text with a shared Renderer using the default typesetter
// and sanitizer.
func Render(text string) string {
	return defaultRenderer().Render(text)
}

// Render returns text as sanitized HTML, with math typeset.
//
// A string wrapped whole in $$...$$ or $...$ is typeset as one expression.
// Otherwise, a string that looks like bare math (see IsBareMath) is typeset
// inline. Everything else is scanned for $$...$$ and $...$ spans, with the
// prose between them escaped. A span the typesetter rejects is shown as its
// escaped source, delimiters included. Render never fails; the empty string
// renders as the empty string.
func (r *Renderer) Render(text string) string {
	if text == "" {
		return ""
	}
	if r.cache != nil {
		return r.cache.get(text, r.render)
	}
	return r.render(text)
}

func (r *Renderer) render(text string) string {
	return r.sanitizer.Sanitize(r.convert(text))
}

// convert produces the unsanitized HTML for text.
func (r *Renderer) convert(text string) string {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) > 4 && strings.HasPrefix(trimmed, "$$") && strings.HasSuffix(trimmed, "$$") {
		out, err := r.typeset(Normalize(trimmed[2:len(trimmed)-2]), true)
		if err != nil {
			return EscapeHTML(trimmed)
		}
		return out
	}
	if len(trimmed) > 2 && strings.HasPrefix(trimmed, "$") && strings.HasSuffix(trimmed, "$") {
		out, err := r.typeset(Normalize(trimmed[1:len(trimmed)-1]), false)
		if err != nil {
			return EscapeHTML(trimmed)
		}
		return out
	}

	if normalized := Normalize(trimmed); IsBareMath(normalized) {
		if out, err := r.typeset(normalized, false); err == nil {
			return out
		}
	}

	return r.convertSpans(text)
}

// convertSpans walks the spans of raw text, escaping prose and typesetting
// math.
func (r *Renderer) convertSpans(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, span := range Scan(text) {
		if !span.IsMath() {
			b.WriteString(EscapeHTML(span.Source))
			continue
		}
		out, err := r.typeset(spanExpr(span), span.DisplayMode())
		if err != nil {
			b.WriteString(EscapeHTML(span.Source))
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

// spanExpr returns the expression to typeset for a math span. Inline
// interiors get an extra doubled-backslash pass before Normalize, so text
// escaped twice on its way through CSV and JSON still typesets.
func spanExpr(span Span) string {
	if span.DisplayMode() {
		return Normalize(span.Expr)
	}
	return Normalize(strings.ReplaceAll(span.Expr, `\\`, `\`))
}

// typeset calls the typesetter, turning a panic into an error.
func (r *Renderer) typeset(expr string, display bool) (string, error) {
	out, err := r.safeTypeset(expr, display)
	if err != nil {
		r.logger.Debug("typesetting failed",
			slog.String("expr", expr),
			slog.Bool("display", display),
			slog.Any("error", err))
		return "", err
	}
	return out, nil
}

func (r *Renderer) safeTypeset(expr string, display bool) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrTypeset, p)
		}
	}()
	return r.typesetter.Typeset(expr, display)
}
