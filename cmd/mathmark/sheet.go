package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mathmark/internal/assets"
	"github.com/alnah/go-mathmark/internal/config"
	"github.com/alnah/go-mathmark/internal/dateutil"
	"github.com/alnah/go-mathmark/internal/fileutil"
	"github.com/alnah/go-mathmark/internal/pdf"
	"github.com/alnah/go-mathmark/internal/quiz"
	"github.com/alnah/go-mathmark/internal/sheet"
)

// runSheet renders a question bank into a printable HTML or PDF sheet.
func runSheet(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseSheetFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: sheet takes exactly one question bank", ErrUsage)
	}
	bankPath := positional[0]

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, flags.engine, envCfg)
	if err != nil {
		return err
	}
	applySheetFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	date, err := dateutil.Resolve(cfg.Sheet.Date, env.Now())
	if err != nil {
		return err
	}
	page := pdf.Page{Size: cfg.Page.Size, Margin: cfg.Page.Margin}
	if !flags.htmlOnly {
		if err := page.Validate(); err != nil {
			return err
		}
	}

	questions, err := quiz.LoadFile(bankPath)
	if err != nil {
		return err
	}

	tk, err := newToolkit(cfg, flags.common.verbose, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = tk.Close() }()

	builder, err := sheet.NewBuilder(tk.assets, cfg.Sheet.Style, tk.sanitizer)
	if err != nil {
		return err
	}
	extraCSS, err := loadExtraCSS(cfg, tk.assets)
	if err != nil {
		return err
	}

	start := time.Now()
	html, err := builder.Build(ctx, sheet.Document{
		Title:       cfg.Sheet.Title,
		Intro:       cfg.Sheet.Intro,
		Date:        date,
		Questions:   quiz.RenderAll(tk.renderer, questions),
		ShowAnswers: cfg.Sheet.ShowAnswers,
		ExtraCSS:    extraCSS,
	})
	if err != nil {
		return err
	}

	outDir := flags.output
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}

	var outPath string
	if flags.htmlOnly {
		outPath = fileutil.OutputPath(bankPath, outDir, ".html")
		err = writeOutput(outPath, []byte(html), nil)
	} else {
		outPath = fileutil.OutputPath(bankPath, outDir, ".pdf")
		err = printSheet(ctx, html, page, timeout, outPath)
	}
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d questions, %v)\n", bankPath, outPath, len(questions), time.Since(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
		}
	}
	return nil
}

// applySheetFlags overrides sheet and page settings with given flags.
func applySheetFlags(f *sheetFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Sheet.Title = f.title
	}
	if f.intro != "" {
		cfg.Sheet.Intro = f.intro
	}
	if f.date != "" {
		cfg.Sheet.Date = f.date
	}
	if f.style != "" {
		cfg.Sheet.Style = f.style
	}
	if f.katexCSS != "" {
		cfg.Typesetter.KaTeXCSS = f.katexCSS
	}
	if f.showAnswers {
		cfg.Sheet.ShowAnswers = true
	}
	if f.pageSize != "" {
		cfg.Page.Size = f.pageSize
	}
	if f.margin > 0 {
		cfg.Page.Margin = f.margin
	}
}

// resolveTimeout picks the flag value, then the environment, then
// pdf.DefaultTimeout.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return pdf.DefaultTimeout, nil
}

// loadExtraCSS returns the KaTeX stylesheet when the KaTeX engine is used:
// from typesetter.katexCSS if set, else styles/katex.css from the assets
// (a custom one, or the built-in rules showing only the MathML layer).
// MathML output needs no extra CSS.
func loadExtraCSS(cfg *config.Config, loader assets.AssetLoader) (string, error) {
	if strings.EqualFold(cfg.Typesetter.Engine, config.EngineMathML) {
		return "", nil
	}
	if path := cfg.Typesetter.KaTeXCSS; path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		return string(data), nil
	}
	css, err := loader.LoadStyle(assets.KaTeXStyleName)
	if errors.Is(err, assets.ErrStyleNotFound) {
		return "", nil
	}
	return css, err
}

// printSheet prints html to a PDF at path.
func printSheet(ctx context.Context, html string, page pdf.Page, timeout time.Duration, path string) error {
	printer := pdf.NewPrinter(timeout)
	defer func() { _ = printer.Close() }()

	data, err := printer.Print(ctx, html, page)
	if err != nil {
		return err
	}
	return writeOutput(path, data, nil)
}
