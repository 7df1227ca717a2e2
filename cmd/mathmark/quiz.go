package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alnah/go-mathmark/internal/hints"
	"github.com/alnah/go-mathmark/internal/quiz"
	"github.com/alnah/go-mathmark/internal/yamlutil"
)

// Quiz output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// runQuiz renders a question bank to JSON or YAML.
func runQuiz(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseQuizFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: quiz takes exactly one question bank", ErrUsage)
	}
	if flags.format != formatJSON && flags.format != formatYAML {
		return fmt.Errorf("%w: --format must be json or yaml, got %q", ErrUsage, flags.format)
	}

	cfg, err := resolveConfig(flags.common.config, flags.engine, loadEnvConfig())
	if err != nil {
		return err
	}

	questions, err := quiz.LoadFile(positional[0])
	if err != nil {
		return err
	}

	tk, err := newToolkit(cfg, flags.common.verbose, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = tk.Close() }()

	if err := ctx.Err(); err != nil {
		return err
	}

	var payload any
	if flags.id != noQuestionID {
		q, err := quiz.ByID(questions, flags.id)
		if err != nil {
			return hintedError{
				err:  fmt.Errorf("%w: id %d", err, flags.id),
				hint: hints.ForQuestionNotFound(len(questions)),
			}
		}
		payload = quiz.RenderOne(tk.renderer, q)
	} else {
		payload = quiz.RenderAll(tk.renderer, questions)
	}

	data, err := encodeQuiz(payload, flags.format)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, data, env.Stdout)
}

// encodeQuiz serializes rendered questions.
func encodeQuiz(v any, format string) ([]byte, error) {
	if format == formatYAML {
		return yamlutil.Encode(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}
