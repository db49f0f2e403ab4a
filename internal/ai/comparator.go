package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/oppsim/internal/model"
)

// Ensure LLMComparator implements model.Comparator.
var _ model.Comparator = (*LLMComparator)(nil)

// LLMComparator scores how similar two business opportunities are using an LLM.
type LLMComparator struct {
	provider LLMProvider
	tmpl     *template.Template
	system   string
	logger   *slog.Logger
}

// NewLLMComparator creates a comparator that renders tmpl with both
// descriptions and sends it to provider. A nil logger discards output.
func NewLLMComparator(provider LLMProvider, tmpl *template.Template, logger *slog.Logger) *LLMComparator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMComparator{
		provider: provider,
		tmpl:     tmpl,
		system:   SystemInstruction,
		logger:   logger,
	}
}

// Compare makes exactly one provider call and returns the parsed result.
// The result is all-or-nothing: on any failure it is the zero Result and the
// error is a *model.CompareError.
func (c *LLMComparator) Compare(ctx context.Context, description1, description2 string) (model.Result, error) {
	id := uuid.NewString()
	logger := c.logger.With("comparison_id", id)

	var promptBuf bytes.Buffer
	if err := c.tmpl.Execute(&promptBuf, struct{ First, Second string }{
		First:  description1,
		Second: description2,
	}); err != nil {
		return model.Result{}, &model.CompareError{Kind: model.FailurePrompt, Err: fmt.Errorf("render prompt: %w", err)}
	}

	start := time.Now()
	raw, err := c.provider.Complete(ctx, ChatRequest{
		System: c.system,
		Prompt: promptBuf.String(),
		JSON:   true,
		User:   id,
	})
	logger.Debug("llm call finished", "elapsed", time.Since(start), "ok", err == nil)
	if err != nil {
		return model.Result{}, asCompareError(err)
	}

	result, err := parseComparison(raw)
	if err != nil {
		logger.Debug("unparseable reply", "raw", raw)
		return model.Result{}, err
	}

	if !result.InRange() {
		logger.Warn("similarity outside 0-100, keeping as returned", "similarity", result.Similarity)
	}
	return result, nil
}

// rawComparison is the JSON object the prompt asks the model for.
// Pointers distinguish a missing or null key from a zero value.
type rawComparison struct {
	Similarity    *float64 `json:"porcentaje_similitud"`
	Analysis      *string  `json:"analisis"`
	Justification *string  `json:"justificacion"`
}

// parseComparison decodes the reply strictly: every key must be present with
// the right JSON type. Values are returned unmodified.
func parseComparison(raw string) (model.Result, error) {
	var rc rawComparison
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return model.Result{}, &model.CompareError{
			Kind: model.FailureMalformedReply,
			Err:  fmt.Errorf("unmarshal comparison JSON: %w", err),
		}
	}

	switch {
	case rc.Similarity == nil:
		return model.Result{}, missingKey("porcentaje_similitud")
	case rc.Analysis == nil:
		return model.Result{}, missingKey("analisis")
	case rc.Justification == nil:
		return model.Result{}, missingKey("justificacion")
	}

	return model.Result{
		Similarity:    *rc.Similarity,
		Analysis:      *rc.Analysis,
		Justification: *rc.Justification,
	}, nil
}

func missingKey(key string) *model.CompareError {
	return &model.CompareError{
		Kind:  model.FailureMissingField,
		Field: key,
		Err:   fmt.Errorf("reply missing required key %q", key),
	}
}

// asCompareError keeps a provider's typed failure, treating anything else as
// a transport failure.
func asCompareError(err error) *model.CompareError {
	var ce *model.CompareError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &model.CompareError{Kind: model.FailureCanceled, Err: err}
	}
	return &model.CompareError{Kind: model.FailureTransport, Err: err}
}
