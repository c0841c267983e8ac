// Package ai provides the text-analysis capability used to enrich pet
// profiles with care summaries and weight trend commentary. The capability
// is selected once at startup: a live Gemini-backed analyzer when an API
// key is configured, otherwise a disabled variant. Callers treat analysis
// as optional enrichment; any error degrades to an omitted field.
package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the disabled analyzer variant
var ErrDisabled = errors.New("ai analysis is not configured")

// TextAnalyzer processes a prompt and returns generated analysis text
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, prompt string) (string, error)

	// Enabled reports whether the analyzer can produce results
	Enabled() bool
}

// Disabled is the no-op analyzer used when no AI provider is configured
type Disabled struct{}

// NewDisabled creates the disabled analyzer variant
func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) AnalyzeText(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}

func (d *Disabled) Enabled() bool {
	return false
}
