// Package ai turns resume text into multiple-choice interview questions using
// a pluggable model backend.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/garnizeh/jobboard/internal/ingestion"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/ollama"
	"github.com/qri-io/jsonschema"
)

const (
	// DefaultContext is used when the user has not uploaded a resume.
	DefaultContext = "General Software Engineering"
	// MaxContextChars bounds how much resume text goes into the prompt.
	MaxContextChars = 500
)

// DefaultTemplate is rendered with .Context set to the truncated resume text.
const DefaultTemplate = `Based on resume: "{{.Context}}...", generate 1 tough technical multiple-choice question.
Return JSON: {"question": "...", "options": ["A", "B", "C", "D"], "answer": "Full Answer Text"}`

// FallbackQuestion is served whenever generation fails for any reason.
func FallbackQuestion() models.InterviewQuestion {
	return models.InterviewQuestion{
		Question: "What is the complexity of Binary Search?",
		Options:  []string{"O(n)", "O(log n)", "O(1)", "O(n^2)"},
		Answer:   "O(log n)",
	}
}

// Interviewer renders the prompt, calls the generator and validates its output.
type Interviewer struct {
	gen      Generator
	template string
	timeout  time.Duration
	schema   *jsonschema.Schema
	logger   *slog.Logger
}

type InterviewerConfig struct {
	// Template overrides DefaultTemplate when non-empty.
	Template string
	Timeout  time.Duration
}

// NewInterviewer builds an Interviewer. A nil gen makes every call return the
// fallback question.
func NewInterviewer(gen Generator, cfg InterviewerConfig, logger *slog.Logger) (*Interviewer, error) {
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if _, err := ollama.RenderTemplate(cfg.Template, map[string]any{"Context": ""}); err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}

	rs, err := compileSchema(questionSchema)
	if err != nil {
		return nil, err
	}

	return &Interviewer{gen: gen, template: cfg.Template, timeout: cfg.Timeout, schema: rs, logger: logger}, nil
}

// Question returns a generated question for resumeText, or the fallback
// question when anything goes wrong. It never fails.
func (iv *Interviewer) Question(ctx context.Context, resumeText string) models.InterviewQuestion {
	q, err := iv.generate(ctx, resumeText)
	if err != nil {
		iv.logger.Warn("interview question fallback", slog.Any("err", err))
		return FallbackQuestion()
	}
	return *q
}

func (iv *Interviewer) generate(ctx context.Context, resumeText string) (*models.InterviewQuestion, error) {
	if iv.gen == nil {
		return nil, errors.New("no generator configured")
	}

	if strings.TrimSpace(resumeText) == "" {
		resumeText = DefaultContext
	}
	prompt, err := ollama.RenderTemplate(iv.template, map[string]any{
		"Context": ingestion.Truncate(resumeText, MaxContextChars),
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	ctxReq, cancel := context.WithTimeout(ctx, iv.timeout)
	defer cancel()

	start := time.Now()
	out, err := iv.gen.Generate(ctxReq, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	iv.logger.Debug("interview question generated", slog.Duration("latency", time.Since(start)))

	return iv.parse(ctxReq, out)
}

func (iv *Interviewer) parse(ctx context.Context, out string) (*models.InterviewQuestion, error) {
	j := extractJSON(StripFences(out))
	if j == "" {
		return nil, errors.New("no JSON object found in response")
	}

	if err := validate(ctx, iv.schema, []byte(j)); err != nil {
		return nil, err
	}

	var q models.InterviewQuestion
	if err := json.Unmarshal([]byte(j), &q); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &q, nil
}

// StripFences removes markdown code fences such as ```json and ``` from s.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSON returns the substring from the first '{' to the last '}' in the input.
// This is a pragmatic approach to handle model outputs that wrap JSON in text or markdown.
func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
