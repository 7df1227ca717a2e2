package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags selects and tunes the renderer.
type engineFlags struct {
	engine      string
	katexScript string
	poolSize    int
	cacheSize   int
	assetPath   string
	extraTags   []string
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common  commonFlags
	engine  engineFlags
	output  string
	files   []string
	workers int
}

// quizFlags holds flags for the quiz command.
type quizFlags struct {
	common commonFlags
	engine engineFlags
	output string
	id     int
	format string
}

// sheetFlags holds flags for the sheet command.
type sheetFlags struct {
	common      commonFlags
	engine      engineFlags
	output      string
	title       string
	intro       string
	date        string
	style       string
	katexCSS    string
	showAnswers bool
	htmlOnly    bool
	pageSize    string
	margin      float64
	timeout     string
}

// noQuestionID marks --id as unset; IDs start at 0.
const noQuestionID = -1

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log typesetting failures and timing")
}

// addEngineFlags adds renderer flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "typesetter: katex, mathml")
	fs.StringVar(&f.katexScript, "katex-script", "", "path to katex.min.js")
	fs.IntVar(&f.poolSize, "katex-pool", 0, "KaTeX runtimes (0 = auto)")
	fs.IntVar(&f.cacheSize, "cache", 0, "memoize up to n rendered strings (0 = off)")
	fs.StringVar(&f.assetPath, "assets-path", "", "custom asset directory")
	fs.StringSliceVar(&f.extraTags, "allow-tag", nil, "extra HTML element to keep (repeatable)")
}

// newFlagSet creates a FlagSet whose usage goes to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseError marks flag errors as usage errors. flag.ErrHelp passes through.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringArrayVarP(&f.files, "file", "f", nil, "render each line of a file (repeatable)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for files (0 = auto)")
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseQuizFlags parses quiz command flags and returns positional args.
func parseQuizFlags(args []string, stderr io.Writer) (*quizFlags, []string, error) {
	f := &quizFlags{}
	fs := newFlagSet("quiz", stderr, printQuizUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.IntVar(&f.id, "id", noQuestionID, "render only the question with this ID")
	fs.StringVar(&f.format, "format", formatJSON, "output format: json, yaml")
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseSheetFlags parses sheet command flags and returns positional args.
func parseSheetFlags(args []string, stderr io.Writer) (*sheetFlags, []string, error) {
	f := &sheetFlags{}
	fs := newFlagSet("sheet", stderr, printSheetUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.title, "title", "", "sheet title")
	fs.StringVar(&f.intro, "intro", "", "introduction (Markdown)")
	fs.StringVar(&f.date, "date", "", `header date: text, "auto" or "auto:LAYOUT"`)
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.katexCSS, "katex-css", "", "path to katex.min.css")
	fs.BoolVar(&f.showAnswers, "answers", false, "include explanations")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML, skip PDF")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0-3.0)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}
