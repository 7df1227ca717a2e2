package mathmark

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-mathmark/internal/katex"
	"github.com/alnah/go-mathmark/internal/mathml"
)

// Typesetter converts a math expression into an HTML fragment.
//
// Implementations must fail loudly: malformed input returns an error
// instead of error markup, so the renderer can fall back to the escaped
// source. Typeset may be called from many goroutines at once.
type Typesetter interface {
	Typeset(expr string, display bool) (string, error)
}

// TypesetterFunc adapts a function to the Typesetter interface.
type TypesetterFunc func(expr string, display bool) (string, error)

// Typeset calls f(expr, display).
func (f TypesetterFunc) Typeset(expr string, display bool) (string, error) {
	return f(expr, display)
}

// Compile-time interface implementation checks.
var (
	_ Typesetter = TypesetterFunc(nil)
	_ Typesetter = (*BundledKaTeXTypesetter)(nil)
	_ Typesetter = (*MathMLTypesetter)(nil)
	_ Typesetter = (*KaTeXTypesetter)(nil)
)

// BundledKaTeXTypesetter typesets with the KaTeX build compiled into the
// binary. It is the renderer's default and needs no setup or Close.
type BundledKaTeXTypesetter struct{}

// NewBundledKaTeXTypesetter creates a BundledKaTeXTypesetter.
func NewBundledKaTeXTypesetter() *BundledKaTeXTypesetter {
	return &BundledKaTeXTypesetter{}
}

// Typeset renders expr to KaTeX HTML with a MathML layer.
// Returns an error wrapping ErrTypeset when KaTeX rejects expr.
func (t *BundledKaTeXTypesetter) Typeset(expr string, display bool) (string, error) {
	out, err := katex.RenderBundled(expr, display)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}
	return out, nil
}

// MathMLTypesetter typesets a LaTeX math subset to presentation MathML
// in pure Go. Environments such as matrix or cases are not supported; use
// it where cgo is unavailable.
type MathMLTypesetter struct{}

// NewMathMLTypesetter creates a MathMLTypesetter.
func NewMathMLTypesetter() *MathMLTypesetter {
	return &MathMLTypesetter{}
}

// Typeset converts expr to MathML wrapped in a span.
// Returns an error wrapping ErrTypeset if expr is not valid input.
func (t *MathMLTypesetter) Typeset(expr string, display bool) (string, error) {
	out, err := mathml.Convert(expr, display)
	if err != nil {
		if errors.Is(err, mathml.ErrEmpty) {
			return "", fmt.Errorf("%w: %w", ErrTypeset, ErrEmptyExpression)
		}
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}
	return out, nil
}

// KaTeXOption configures a KaTeXTypesetter.
type KaTeXOption func(*katexConfig)

type katexConfig struct {
	poolSize int
}

// WithKaTeXPoolSize bounds the number of JavaScript runtimes kept alive.
// Values below 1 fall back to ResolvePoolSize(0).
func WithKaTeXPoolSize(n int) KaTeXOption {
	return func(c *katexConfig) {
		c.poolSize = n
	}
}

// KaTeXTypesetter typesets with a caller-supplied KaTeX bundle running in
// goja runtimes, for pinning a KaTeX release other than the bundled one.
// Create with NewKaTeXTypesetter or LoadKaTeXTypesetter and Close when done.
type KaTeXTypesetter struct {
	engine *katex.Engine
}

// NewKaTeXTypesetter compiles the given katex.js (or katex.min.js) source.
// Runtimes are created lazily on first use.
func NewKaTeXTypesetter(script string, opts ...KaTeXOption) (*KaTeXTypesetter, error) {
	cfg := katexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine, err := katex.New(script, ResolvePoolSize(cfg.poolSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKaTeXScript, err)
	}
	return &KaTeXTypesetter{engine: engine}, nil
}

// LoadKaTeXTypesetter reads a KaTeX script from path and compiles it.
func LoadKaTeXTypesetter(path string, opts ...KaTeXOption) (*KaTeXTypesetter, error) {
	script, err := os.ReadFile(path) // #nosec G304 -- user-provided script path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKaTeXNotFound, path)
		}
		return nil, fmt.Errorf("reading KaTeX script: %w", err)
	}
	return NewKaTeXTypesetter(string(script), opts...)
}

// Typeset renders expr with katex.renderToString and throwOnError set.
func (t *KaTeXTypesetter) Typeset(expr string, display bool) (string, error) {
	out, err := t.engine.RenderToString(expr, display)
	if err != nil {
		if errors.Is(err, katex.ErrClosed) {
			return "", ErrEngineClosed
		}
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}
	return out, nil
}

// Close releases the JavaScript runtimes.
func (t *KaTeXTypesetter) Close() error {
	return t.engine.Close()
}
