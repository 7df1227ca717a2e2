package main

import (
	"errors"
	"os"

	mathmark "github.com/alnah/go-mathmark"
	"github.com/alnah/go-mathmark/internal/assets"
	"github.com/alnah/go-mathmark/internal/config"
	"github.com/alnah/go-mathmark/internal/dateutil"
	"github.com/alnah/go-mathmark/internal/pdf"
	"github.com/alnah/go-mathmark/internal/quiz"
)

// Exit codes for the mathmark CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Success
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or bank layout
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitNotFound = 5 // Question ID not in bank
)

// exitCodeFor returns the exit code for err, matching wrapped errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, quiz.ErrQuestionNotFound) {
		return ExitNotFound
	}

	if errors.Is(err, pdf.ErrBrowserConnect) ||
		errors.Is(err, pdf.ErrPageCreate) ||
		errors.Is(err, pdf.ErrPageLoad) ||
		errors.Is(err, pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, quiz.ErrReadCSV) ||
		errors.Is(err, mathmark.ErrKaTeXNotFound) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, quiz.ErrNoQuestionColumn) ||
		errors.Is(err, pdf.ErrInvalidPage) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, mathmark.ErrKaTeXScript) ||
		errors.Is(err, mathmark.ErrInvalidCacheSize) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrScriptNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
