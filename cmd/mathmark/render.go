package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	mathmark "github.com/alnah/go-mathmark"
	"github.com/alnah/go-mathmark/internal/fileutil"
	"github.com/alnah/go-mathmark/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---
	filePermissions = 0o644 // rw-r--r--
)

// maxWorkers bounds --workers.
const maxWorkers = 32

// Sentinel errors for command I/O.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
	ErrBatchFailed = errors.New("some files failed")
)

// TextRenderer renders one string to sanitized HTML.
type TextRenderer interface {
	Render(text string) string
}

var _ TextRenderer = (*mathmark.Renderer)(nil)

// runRender renders text arguments, stdin lines, or --file inputs.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(flags.files) > 0 && len(positional) > 0 {
		return fmt.Errorf("%w: pass text arguments or --file, not both", ErrUsage)
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, flags.engine, envCfg)
	if err != nil {
		return err
	}

	tk, err := newToolkit(cfg, flags.common.verbose, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = tk.Close() }()

	if len(flags.files) > 0 {
		workers := flags.workers
		if workers == 0 {
			workers = envCfg.Workers
		}
		if err := validateWorkers(workers); err != nil {
			return err
		}

		outDir := flags.output
		if outDir == "" {
			outDir = cfg.Output.DefaultDir
		}
		jobs := planRenderJobs(flags.files, outDir)
		results := renderBatch(ctx, tk.renderer, jobs, mathmark.ResolvePoolSize(workers))
		if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
			return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
		}
		return nil
	}

	lines := positional
	if len(lines) == 0 {
		if lines, err = readLines(env.Stdin); err != nil {
			return err
		}
	}
	return writeOutput(flags.output, []byte(renderLines(tk.renderer, lines)), env.Stdout)
}

// validateWorkers checks the --workers range. Zero means auto.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: --workers must be between 0 and %d, got %d", ErrUsage, maxWorkers, n)
	}
	return nil
}

// readLines reads r fully and splits it into lines without terminators.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return lines, nil
}

// renderLines renders each line and joins the results, one per line.
func renderLines(r TextRenderer, lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(r.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return hintedError{err: fmt.Errorf("%w: %v", ErrWriteOutput, err), hint: hints.ForOutputDirectory()}
	}
	// #nosec G306 -- rendered HTML is meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// renderJob is one input file and where its HTML goes.
type renderJob struct {
	InputPath  string
	OutputPath string
}

// renderResult holds the outcome of a single file.
type renderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// planRenderJobs maps inputs to .html outputs. With several inputs a
// non-empty outDir is always treated as a directory.
func planRenderJobs(files []string, outDir string) []renderJob {
	if len(files) > 1 && outDir != "" && !strings.HasSuffix(outDir, string(filepath.Separator)) {
		outDir += string(filepath.Separator)
	}
	jobs := make([]renderJob, len(files))
	for i, f := range files {
		jobs[i] = renderJob{InputPath: f, OutputPath: fileutil.OutputPath(f, outDir, ".html")}
	}
	return jobs
}

// renderBatch renders files concurrently with at most workers goroutines.
// Results keep the order of jobs.
func renderBatch(ctx context.Context, r TextRenderer, jobs []renderJob, workers int) []renderResult {
	if len(jobs) == 0 {
		return nil
	}
	workers = min(workers, len(jobs))

	results := make([]renderResult, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = renderResult{InputPath: jobs[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(r, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderFile renders every line of one file.
func renderFile(r TextRenderer, job renderJob) renderResult {
	start := time.Now()
	result := renderResult{InputPath: job.InputPath, OutputPath: job.OutputPath}

	f, err := os.Open(job.InputPath) // #nosec G304 -- user-provided path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}
	lines, err := readLines(f)
	_ = f.Close()
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Err = writeOutput(job.OutputPath, []byte(renderLines(r, lines)), nil)
	result.Duration = time.Since(start)
	return result
}

// printResults reports batch outcomes and returns the number of failures.
func printResults(results []renderResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}
