package main

// Notes:
// - runSheet is tested with --html-only; PDF printing needs Chrome and is
//   covered by the pdf package's integration tests.
// - loadExtraCSS and resolveTimeout are tested directly.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mathmark/internal/assets"
	"github.com/alnah/go-mathmark/internal/config"
	"github.com/alnah/go-mathmark/internal/pdf"
)

// ---------------------------------------------------------------------------
// TestRunSheet - HTML sheets
// ---------------------------------------------------------------------------

func TestRunSheet_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bank := writeFile(t, dir, "algebra.csv", sampleBank)
	outDir := filepath.Join(dir, "out") + string(filepath.Separator)

	env := newTestEnv("")
	code := runMain([]string{
		"mathmark", "sheet", "--html-only", "--answers",
		"--title", "Algebra <1>", "--intro", "Show **all** work.", "--date", "auto:long",
		"-o", outDir, bank,
	}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}

	outPath := filepath.Join(dir, "out", "algebra.html")
	if !strings.Contains(env.stdout.String(), "Created "+outPath) {
		t.Errorf("stdout = %q, want Created %s", env.stdout, outPath)
	}

	html := readFile(t, outPath)
	checks := []struct {
		name string
		want string
	}{
		{"escaped title", "<h1>Algebra &lt;1&gt;</h1>"},
		{"date from env clock", `<p class="sheet-date">January 15, 2026</p>`},
		{"intro markdown", "<strong>all</strong>"},
		{"typeset question", `<div class="question-text">What is <span class="katex">`},
		{"built-in katex rules", ".katex-html"},
		{"choices", `<li class="choice">`},
		{"explanation", `<div class="explanation">Take the square root!</div>`},
		{"style in head", "<style>"},
	}
	for _, c := range checks {
		if !strings.Contains(html, c.want) {
			t.Errorf("%s: output missing %q", c.name, c.want)
		}
	}
}

func TestRunSheet_Quiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bank := writeFile(t, dir, "bank.csv", sampleBank)

	env := newTestEnv("")
	code := runMain([]string{"mathmark", "sheet", "--html-only", "-q", bank}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout)
	}
	readFile(t, filepath.Join(dir, "bank.html"))
}

func TestRunSheet_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bank := writeFile(t, dir, "bank.csv", sampleBank)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no bank", []string{"sheet"}, ExitUsage},
		{"bad page size", []string{"sheet", "-p", "tabloid", bank}, ExitUsage},
		{"bad margin", []string{"sheet", "--margin", "9", bank}, ExitUsage},
		{"bad timeout", []string{"sheet", "-t", "soon", bank}, ExitUsage},
		{"bad date", []string{"sheet", "--html-only", "--date", "auto:[DD", bank}, ExitUsage},
		{"unknown style", []string{"sheet", "--html-only", "--style", "nope", bank}, ExitUsage},
		{"missing bank", []string{"sheet", "--html-only", filepath.Join(dir, "missing.csv")}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			code := runMain(append([]string{"mathmark"}, tt.args...), env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplySheetFlags
// ---------------------------------------------------------------------------

func TestApplySheetFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applySheetFlags(&sheetFlags{
			title: "T", intro: "I", date: "auto", style: "s", katexCSS: "k.css",
			showAnswers: true, pageSize: "a4", margin: 1,
		}, cfg)

		if cfg.Sheet.Title != "T" || cfg.Sheet.Intro != "I" || cfg.Sheet.Date != "auto" || cfg.Sheet.Style != "s" {
			t.Errorf("sheet = %+v", cfg.Sheet)
		}
		if cfg.Typesetter.KaTeXCSS != "k.css" {
			t.Errorf("KaTeXCSS = %q, want k.css", cfg.Typesetter.KaTeXCSS)
		}
		if !cfg.Sheet.ShowAnswers {
			t.Error("ShowAnswers = false, want true")
		}
		if cfg.Page.Size != "a4" || cfg.Page.Margin != 1 {
			t.Errorf("page = %+v", cfg.Page)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Sheet.ShowAnswers = true
		cfg.Page.Margin = 0.75
		applySheetFlags(&sheetFlags{}, cfg)

		if cfg.Sheet.Title != "Questions" {
			t.Errorf("Title = %q, want Questions", cfg.Sheet.Title)
		}
		if !cfg.Sheet.ShowAnswers {
			t.Error("ShowAnswers reset by unset flag")
		}
		if cfg.Page.Margin != 0.75 {
			t.Errorf("Margin = %v, want 0.75", cfg.Page.Margin)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - flag > env > default
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"default", "", 0, pdf.DefaultTimeout, false},
		{"env", "", 10 * time.Second, 10 * time.Second, false},
		{"flag wins", "1m", 10 * time.Second, time.Minute, false},
		{"unparsable", "soon", 0, 0, true},
		{"zero", "0s", 0, 0, true},
		{"negative", "-5s", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout(%q, %v) = %v, want %v", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadExtraCSS - KaTeX stylesheet lookup
// ---------------------------------------------------------------------------

// styleLoader serves a fixed set of styles.
type styleLoader map[string]string

func (l styleLoader) LoadStyle(name string) (string, error) {
	if css, ok := l[name]; ok {
		return css, nil
	}
	return "", assets.ErrStyleNotFound
}

func (l styleLoader) LoadTemplate(string) (string, error) { return "", assets.ErrTemplateNotFound }
func (l styleLoader) LoadScript(string) (string, error)   { return "", assets.ErrScriptNotFound }

func TestLoadExtraCSS(t *testing.T) {
	t.Parallel()

	katex := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Typesetter.Engine = config.EngineKaTeX
		return cfg
	}

	t.Run("mathml needs none", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Typesetter.Engine = config.EngineMathML
		css, err := loadExtraCSS(cfg, styleLoader{"katex": ".katex{}"})
		if err != nil || css != "" {
			t.Errorf("loadExtraCSS() = %q, %v; want empty", css, err)
		}
	})

	t.Run("from file", func(t *testing.T) {
		t.Parallel()

		cfg := katex()
		cfg.Typesetter.KaTeXCSS = writeFile(t, t.TempDir(), "katex.min.css", ".katex{font:1em}")

		css, err := loadExtraCSS(cfg, styleLoader{"katex": "ignored"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if css != ".katex{font:1em}" {
			t.Errorf("css = %q", css)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg := katex()
		cfg.Typesetter.KaTeXCSS = filepath.Join(t.TempDir(), "none.css")

		if _, err := loadExtraCSS(cfg, styleLoader{}); !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
	})

	t.Run("from assets", func(t *testing.T) {
		t.Parallel()

		css, err := loadExtraCSS(katex(), styleLoader{"katex": ".katex{}"})
		if err != nil || css != ".katex{}" {
			t.Errorf("loadExtraCSS() = %q, %v", css, err)
		}
	})

	t.Run("default engine gets the built-in rules", func(t *testing.T) {
		t.Parallel()

		css, err := loadExtraCSS(config.DefaultConfig(), assets.NewEmbeddedLoader())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(css, ".katex-html") {
			t.Errorf("css = %q, want the built-in KaTeX rules", css)
		}
	})

	t.Run("absent style is not an error", func(t *testing.T) {
		t.Parallel()

		css, err := loadExtraCSS(katex(), styleLoader{})
		if err != nil || css != "" {
			t.Errorf("loadExtraCSS() = %q, %v; want empty", css, err)
		}
	})
}
