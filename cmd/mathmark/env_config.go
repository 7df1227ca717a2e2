package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mathmark/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MATHMARK_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath  string        // MATHMARK_CONFIG: config name or path
	Engine      string        // MATHMARK_ENGINE: mathml, katex
	KaTeXScript string        // MATHMARK_KATEX_SCRIPT: katex.min.js path
	KaTeXCSS    string        // MATHMARK_KATEX_CSS: katex.min.css path
	AssetsPath  string        // MATHMARK_ASSETS_PATH: custom asset directory
	OutputDir   string        // MATHMARK_OUTPUT_DIR: default output directory
	PageSize    string        // MATHMARK_PAGE_SIZE: letter, a4, legal
	CacheSize   int           // MATHMARK_CACHE_SIZE: memoized strings
	Workers     int           // MATHMARK_WORKERS: parallel workers
	Timeout     time.Duration // MATHMARK_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid MATHMARK_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"MATHMARK_CONFIG":       true,
	"MATHMARK_ENGINE":       true,
	"MATHMARK_KATEX_SCRIPT": true,
	"MATHMARK_KATEX_CSS":    true,
	"MATHMARK_ASSETS_PATH":  true,
	"MATHMARK_OUTPUT_DIR":   true,
	"MATHMARK_PAGE_SIZE":    true,
	"MATHMARK_CACHE_SIZE":   true,
	"MATHMARK_WORKERS":      true,
	"MATHMARK_TIMEOUT":      true,
}

// loadEnvConfig reads MATHMARK_* variables. Unparsable or non-positive
// numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MATHMARK_CONFIG"),
		Engine:      os.Getenv("MATHMARK_ENGINE"),
		KaTeXScript: os.Getenv("MATHMARK_KATEX_SCRIPT"),
		KaTeXCSS:    os.Getenv("MATHMARK_KATEX_CSS"),
		AssetsPath:  os.Getenv("MATHMARK_ASSETS_PATH"),
		OutputDir:   os.Getenv("MATHMARK_OUTPUT_DIR"),
		PageSize:    os.Getenv("MATHMARK_PAGE_SIZE"),
		CacheSize:   positiveInt(os.Getenv("MATHMARK_CACHE_SIZE")),
		Workers:     positiveInt(os.Getenv("MATHMARK_WORKERS")),
	}

	if timeout := os.Getenv("MATHMARK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// positiveInt parses s, returning 0 for anything but a positive integer.
func positiveInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// warnUnknownEnvVars warns about unrecognized MATHMARK_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are
// set. Flags are applied afterwards, giving flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Typesetter.Engine = env.Engine
	}
	if env.KaTeXScript != "" {
		cfg.Typesetter.KaTeXScript = env.KaTeXScript
	}
	if env.KaTeXCSS != "" {
		cfg.Typesetter.KaTeXCSS = env.KaTeXCSS
	}
	if env.AssetsPath != "" {
		cfg.Assets.BasePath = env.AssetsPath
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.CacheSize > 0 {
		cfg.Cache.Size = env.CacheSize
	}
}
