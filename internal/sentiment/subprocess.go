package sentiment

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/synsight/synsight/internal/models"
)

// SubprocessScorer bridges to an external lexicon-based scoring process.
// The process receives a single JSON argument ({"text": ...} or
// {"texts": [...]}) and writes the result contract to stdout as
// newline-delimited JSON. Any stderr output, non-zero exit, or unparsable
// stdout is a hard failure.
type SubprocessScorer struct {
	Command string
	Args    []string
}

func NewSubprocessScorer(command string, args ...string) *SubprocessScorer {
	return &SubprocessScorer{Command: command, Args: args}
}

func (s *SubprocessScorer) run(ctx context.Context, input any) ([]byte, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("[SubprocessScorer] failed to encode input: %w", err)
	}

	args := append(append([]string{}, s.Args...), string(payload))
	cmd := exec.CommandContext(ctx, s.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Error("[SubprocessScorer] scoring process failed",
			slog.String("command", s.Command),
			slog.String("stderr", strings.TrimSpace(stderr.String())),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("[SubprocessScorer] scoring process failed: %s: %w",
			strings.TrimSpace(stderr.String()), ErrScoringUnavailable)
	}
	if stderr.Len() > 0 {
		slog.Error("[SubprocessScorer] scoring process wrote to stderr",
			slog.String("stderr", strings.TrimSpace(stderr.String())))
		return nil, fmt.Errorf("[SubprocessScorer] scoring process wrote to stderr: %s: %w",
			strings.TrimSpace(stderr.String()), ErrScoringUnavailable)
	}

	// First non-empty line carries the result document.
	scanner := bufio.NewScanner(&stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return []byte(line), nil
		}
	}
	return nil, fmt.Errorf("[SubprocessScorer] scoring process produced no output: %w", ErrScoringUnavailable)
}

func (s *SubprocessScorer) ScoreText(ctx context.Context, text string) (*models.SentimentResult, error) {
	out, err := s.run(ctx, map[string]any{"text": text})
	if err != nil {
		return nil, err
	}

	var result models.SentimentResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("[SubprocessScorer] failed to parse scoring output: %v: %w", err, ErrScoringUnavailable)
	}
	return &result, nil
}

func (s *SubprocessScorer) ScoreBulk(ctx context.Context, texts []string) (*models.BulkSentiment, error) {
	out, err := s.run(ctx, map[string]any{"texts": texts})
	if err != nil {
		return nil, err
	}

	var bulk models.BulkSentiment
	if err := json.Unmarshal(out, &bulk); err != nil {
		return nil, fmt.Errorf("[SubprocessScorer] failed to parse scoring output: %v: %w", err, ErrScoringUnavailable)
	}
	return &bulk, nil
}
