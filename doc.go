// Package mathmark renders strings that mix prose and LaTeX math into
// sanitized HTML.
//
// # Quick Start
//
//	html := mathmark.Render("The area is $\\pi r^2$ approximately.")
//
// Render uses a shared Renderer with the bundled KaTeX typesetter and the
// default bluemonday sanitizer. Create your own to change either:
//
//	r, err := mathmark.NewRenderer(
//	    mathmark.WithTypesetter(katex),
//	    mathmark.WithCache(1024),
//	    mathmark.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := r.Render(question)
//
// # Input Forms
//
// Three forms of input are recognized:
//
//  1. Whole-string math: "$$x^2$$" (display) or "$a+b$" (inline)
//  2. Bare math without delimiters: "\\sqrt{5}", "5\\sqrt{5}", "x^2+1"
//  3. Prose with embedded spans: "Solve $x+1=2$ for $x$."
//
// Before typesetting, each expression is normalized: smart quotes, dashes
// and non-breaking spaces become ASCII, and doubled backslashes left by
// CSV or JSON escaping are collapsed (see Normalize).
//
// # Failure Handling
//
// Render never returns an error. When the typesetter rejects an
// expression, its escaped source is shown instead, delimiters included.
// Unterminated delimiters are plain text.
//
// # Typesetters
//
// BundledKaTeXTypesetter (the default) runs the KaTeX build shipped with
// goldmark-katex; it needs cgo. MathMLTypesetter converts a LaTeX subset
// to presentation MathML in pure Go. KaTeXTypesetter runs a KaTeX bundle
// supplied by the caller in goja runtimes:
//
//	katex, err := mathmark.LoadKaTeXTypesetter("katex.min.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer katex.Close()
//
// Pages showing KaTeX output need the KaTeX stylesheet, or at least a rule
// hiding .katex-html so that only the MathML layer shows.
//
// # Sanitization
//
// Output is always sanitized, whichever branch produced it. The default
// sanitizer allows bluemonday's user-generated-content baseline, span, div
// and MathML elements, and class and style on every element.
package mathmark
