package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	mathmark "github.com/alnah/go-mathmark"
	"github.com/alnah/go-mathmark/internal/assets"
	"github.com/alnah/go-mathmark/internal/config"
	"github.com/alnah/go-mathmark/internal/fileutil"
	"github.com/alnah/go-mathmark/internal/hints"
	"github.com/alnah/go-mathmark/internal/pdf"
	"github.com/alnah/go-mathmark/internal/quiz"
)

// resolveConfig merges defaults, the config file, MATHMARK_* variables and
// engine flags, in increasing priority, and validates the result.
func resolveConfig(configFlag string, flags engineFlags, env *envConfig) (*config.Config, error) {
	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, hintedError{err: err, hint: hints.ForConfigNotFound(config.SearchPaths(name))}
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	applyEngineFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEngineFlags overrides cfg with the engine flags that were given.
func applyEngineFlags(f engineFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Typesetter.Engine = f.engine
	}
	if f.katexScript != "" {
		cfg.Typesetter.KaTeXScript = f.katexScript
	}
	if f.poolSize > 0 {
		cfg.Typesetter.PoolSize = f.poolSize
	}
	if f.cacheSize > 0 {
		cfg.Cache.Size = f.cacheSize
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	cfg.Sanitizer.ExtraTags = append(cfg.Sanitizer.ExtraTags, f.extraTags...)
}

// toolkit bundles what the commands render with.
type toolkit struct {
	renderer  *mathmark.Renderer
	sanitizer *mathmark.PolicySanitizer
	assets    *assets.AssetResolver
	logger    *slog.Logger
	closers   []io.Closer
}

// newToolkit builds the renderer described by cfg. Typesetting failures are
// logged to stderr when verbose.
func newToolkit(cfg *config.Config, verbose bool, stderr io.Writer) (*toolkit, error) {
	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("assets ready", slog.Bool("custom", resolver.HasCustomLoader()), slog.String("basePath", cfg.Assets.BasePath))

	tk := &toolkit{
		sanitizer: mathmark.NewSanitizer(cfg.Sanitizer.ExtraTags...),
		assets:    resolver,
		logger:    logger,
	}

	typesetter, err := tk.newTypesetter(cfg)
	if err != nil {
		return nil, err
	}

	opts := []mathmark.Option{
		mathmark.WithTypesetter(typesetter),
		mathmark.WithSanitizer(tk.sanitizer),
		mathmark.WithLogger(logger),
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, mathmark.WithCache(cfg.Cache.Size))
	}

	tk.renderer, err = mathmark.NewRenderer(opts...)
	if err != nil {
		_ = tk.Close()
		return nil, err
	}
	return tk, nil
}

// newTypesetter creates the configured engine. KaTeX runs a user bundle
// from typesetter.katexScript or the assets' scripts/katex.js when there is
// one, and the bundled build otherwise. A user bundle is registered for Close.
func (tk *toolkit) newTypesetter(cfg *config.Config) (mathmark.Typesetter, error) {
	if strings.EqualFold(cfg.Typesetter.Engine, config.EngineMathML) {
		return mathmark.NewMathMLTypesetter(), nil
	}

	poolSize := mathmark.WithKaTeXPoolSize(cfg.Typesetter.PoolSize)

	var (
		katex *mathmark.KaTeXTypesetter
		err   error
	)
	switch {
	case cfg.Typesetter.KaTeXScript != "":
		katex, err = mathmark.LoadKaTeXTypesetter(cfg.Typesetter.KaTeXScript, poolSize)
	case tk.assets.HasCustomLoader():
		var script string
		script, err = tk.assets.LoadScript(assets.KaTeXScriptName)
		if errors.Is(err, assets.ErrScriptNotFound) {
			return tk.bundledKaTeX(), nil
		}
		if err != nil {
			return nil, err
		}
		katex, err = mathmark.NewKaTeXTypesetter(script, poolSize)
	default:
		return tk.bundledKaTeX(), nil
	}
	if err != nil {
		if errors.Is(err, mathmark.ErrKaTeXNotFound) {
			return nil, hintedError{err: err, hint: hints.ForKaTeXScript()}
		}
		return nil, err
	}

	tk.logger.Debug("katex typesetter ready",
		slog.String("bundle", "custom"),
		slog.Int("pool", mathmark.ResolvePoolSize(cfg.Typesetter.PoolSize)))
	tk.closers = append(tk.closers, katex)
	return katex, nil
}

func (tk *toolkit) bundledKaTeX() mathmark.Typesetter {
	tk.logger.Debug("katex typesetter ready", slog.String("bundle", "builtin"))
	return mathmark.NewBundledKaTeXTypesetter()
}

// Close releases typesetter resources.
func (tk *toolkit) Close() error {
	var errs []error
	for _, c := range tk.closers {
		errs = append(errs, c.Close())
	}
	tk.closers = nil
	return errors.Join(errs...)
}

// hintedError carries an actionable hint printed after the error.
type hintedError struct {
	err  error
	hint string
}

func (e hintedError) Error() string { return e.err.Error() }
func (e hintedError) Unwrap() error { return e.err }

// errorHint returns the hint for err, if one applies.
func errorHint(err error) string {
	var he hintedError
	if errors.As(err, &he) {
		return he.hint
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, quiz.ErrNoQuestionColumn):
		return hints.ForQuestionColumn()
	case errors.Is(err, pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}

// formatError renders err with its hint for stderr.
func formatError(err error) string {
	return fmt.Sprintf("error: %v%s", err, errorHint(err))
}
