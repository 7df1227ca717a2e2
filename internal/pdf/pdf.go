// Package pdf prints HTML documents to PDF with headless Chrome.
package pdf

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for PDF printing.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPage    = errors.New("invalid page settings")
)

// Page sizes.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	DefaultMargin = 0.5
	MinMargin     = 0.0
	MaxMargin     = 3.0
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// pageDimensions are width and height in inches.
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// Page is the paper layout of a printed document.
type Page struct {
	Size   string  // letter, a4 or legal; empty means letter
	Margin float64 // inches on every side; zero means DefaultMargin
}

// Validate checks the page size and margin.
func (p Page) Validate() error {
	size := strings.ToLower(p.Size)
	if size != "" {
		if _, ok := pageDimensions[size]; !ok {
			return fmt.Errorf("%w: unknown size %q (want letter, a4 or legal)", ErrInvalidPage, p.Size)
		}
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: margin %.2f outside %.1f-%.1f inches", ErrInvalidPage, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns the paper width, height and margin, defaults applied.
func (p Page) dimensions() (width, height, margin float64) {
	size := strings.ToLower(p.Size)
	if size == "" {
		size = PageSizeLetter
	}
	dims, ok := pageDimensions[size]
	if !ok {
		dims = pageDimensions[PageSizeLetter]
	}
	margin = p.Margin
	if margin == 0 {
		margin = DefaultMargin
	}
	return dims[0], dims[1], margin
}
