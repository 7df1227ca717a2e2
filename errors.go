package mathmark

import "errors"

// Sentinel errors for library operations.
var (
	// ErrTypeset indicates the typesetter rejected an expression.
	// The renderer never surfaces it; it only reaches callers that use a
	// Typesetter directly.
	ErrTypeset = errors.New("typesetting failed")

	// ErrEmptyExpression indicates a typesetter was given nothing to typeset.
	ErrEmptyExpression = errors.New("empty math expression")

	// KaTeX engine errors.
	ErrKaTeXScript   = errors.New("invalid KaTeX script")
	ErrKaTeXNotFound = errors.New("KaTeX script not found")
	ErrEngineClosed  = errors.New("typesetting engine closed")

	// ErrInvalidCacheSize indicates a non-positive cache size.
	ErrInvalidCacheSize = errors.New("invalid cache size")
)
