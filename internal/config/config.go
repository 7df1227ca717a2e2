// Package config loads the YAML configuration of the mathmark CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mathmark/internal/fileutil"
	"github.com/alnah/go-mathmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir holding named configs.
const appDir = "go-mathmark"

// Typesetting engines.
const (
	EngineMathML = "mathml"
	EngineKaTeX  = "katex"
)

// Field limits.
const (
	MaxPathLength     = 4096
	MaxTitleLength    = 200
	MaxIntroLength    = 10000
	MaxNameLength     = 64
	MaxDateLength     = 64
	MaxPageSizeLength = 10
	MaxExtraTags      = 32
	MaxCacheSize      = 1 << 20
	MaxPoolSize       = 64
	MaxMargin         = 3.0
)

// Config holds the CLI configuration.
type Config struct {
	Typesetter TypesetterConfig `yaml:"typesetter"`
	Sanitizer  SanitizerConfig  `yaml:"sanitizer"`
	Cache      CacheConfig      `yaml:"cache"`
	Sheet      SheetConfig      `yaml:"sheet"`
	Page       PageConfig       `yaml:"page"`
	Assets     AssetsConfig     `yaml:"assets"`
	Output     OutputConfig     `yaml:"output"`
}

// TypesetterConfig selects and tunes the math engine.
type TypesetterConfig struct {
	Engine      string `yaml:"engine"`      // "katex" (default) or "mathml"
	KaTeXScript string `yaml:"katexScript"` // path to katex.min.js; empty = scripts/katex.js from assets, else bundled
	KaTeXCSS    string `yaml:"katexCSS"`    // path to katex.min.css, inlined into sheets
	PoolSize    int    `yaml:"poolSize"`    // KaTeX runtimes (0 = auto)
}

// SanitizerConfig extends the HTML allow-list.
type SanitizerConfig struct {
	ExtraTags []string `yaml:"extraTags"`
}

// CacheConfig controls render memoization.
type CacheConfig struct {
	Size int `yaml:"size"` // 0 = disabled
}

// SheetConfig defines question sheet content.
type SheetConfig struct {
	Title       string `yaml:"title"`
	Intro       string `yaml:"intro"` // Markdown
	Date        string `yaml:"date"`  // literal text, "auto" or "auto:LAYOUT"
	ShowAnswers bool   `yaml:"showAnswers"`
	Style       string `yaml:"style"` // style name in assets (empty = "sheet")
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size   string  `yaml:"size"`   // "letter", "a4", "legal" (default: "letter")
	Margin float64 `yaml:"margin"` // inches (default: 0.5)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the input
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Typesetter: TypesetterConfig{Engine: EngineKaTeX},
		Sheet:      SheetConfig{Title: "Questions"},
	}
}

// Validate checks enums, ranges and field lengths.
// Called by LoadConfig; available to callers that build a Config manually.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Typesetter.Engine) {
	case "", EngineMathML, EngineKaTeX:
	default:
		return fmt.Errorf("%w: typesetter.engine %q (must be mathml or katex)", ErrInvalidValue, c.Typesetter.Engine)
	}
	if c.Typesetter.PoolSize < 0 || c.Typesetter.PoolSize > MaxPoolSize {
		return fmt.Errorf("%w: typesetter.poolSize must be between 0 and %d, got %d", ErrInvalidValue, MaxPoolSize, c.Typesetter.PoolSize)
	}
	if c.Cache.Size < 0 || c.Cache.Size > MaxCacheSize {
		return fmt.Errorf("%w: cache.size must be between 0 and %d, got %d", ErrInvalidValue, MaxCacheSize, c.Cache.Size)
	}
	if c.Page.Margin < 0 || c.Page.Margin > MaxMargin {
		return fmt.Errorf("%w: page.margin must be between 0 and %.1f, got %.2f", ErrInvalidValue, MaxMargin, c.Page.Margin)
	}

	if len(c.Sanitizer.ExtraTags) > MaxExtraTags {
		return fmt.Errorf("%w: sanitizer.extraTags (%d tags, max %d)", ErrFieldTooLong, len(c.Sanitizer.ExtraTags), MaxExtraTags)
	}
	for i, tag := range c.Sanitizer.ExtraTags {
		if err := validateTag(fmt.Sprintf("sanitizer.extraTags[%d]", i), tag); err != nil {
			return err
		}
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"typesetter.katexScript", c.Typesetter.KaTeXScript, MaxPathLength},
		{"typesetter.katexCSS", c.Typesetter.KaTeXCSS, MaxPathLength},
		{"sheet.title", c.Sheet.Title, MaxTitleLength},
		{"sheet.intro", c.Sheet.Intro, MaxIntroLength},
		{"sheet.date", c.Sheet.Date, MaxDateLength},
		{"sheet.style", c.Sheet.Style, MaxNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// validateTag accepts lower-case element names such as "quiz-choice".
func validateTag(field, tag string) error {
	if tag == "" || len(tag) > MaxNameLength {
		return fmt.Errorf("%w: %s %q", ErrInvalidValue, field, tag)
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return fmt.Errorf("%w: %s %q (lower-case letters, digits and hyphens)", ErrInvalidValue, field, tag)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name looked up as ./NAME.yaml, ./NAME.yml, then in the user config dir.
// Missing fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
