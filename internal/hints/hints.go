// Package hints provides actionable error hints for common CLI failures.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mathmark/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch failures, suggesting
// the environment variables relevant to CI and containers.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or use --html-only to skip PDF output")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the timeout for large sheets.
func ForTimeout() string {
	return format("for large question banks, use --timeout")
}

// ForConfigNotFound suggests --config and the user config location among
// searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-mathmark") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// slashed normalizes separators so Windows paths match too.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles, if any.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForKaTeXScript explains a missing user KaTeX bundle.
func ForKaTeXScript() string {
	return format("check the --katex-script path, or omit it to use the built-in KaTeX")
}

// ForQuestionColumn reminds that banks need a header row.
func ForQuestionColumn() string {
	return format(`the first row must be a header with a "question" column`)
}

// ForQuestionNotFound gives the valid ID range of a bank with count questions.
func ForQuestionNotFound(count int) string {
	if count == 0 {
		return format("the question bank is empty")
	}
	return format(fmt.Sprintf("valid IDs are 0 to %d", count-1))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
