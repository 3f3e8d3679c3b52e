package ai

import (
	"context"
	"fmt"
	"strings"
)

// FallbackGenerator tries the primary generator once and, when it fails or
// returns empty output, makes exactly one attempt against the secondary.
// There is no retry beyond that; the caller sees the failure.
type FallbackGenerator struct {
	primary   TextGenerator
	secondary TextGenerator
}

// NewFallbackGenerator chains a primary and an optional secondary generator.
func NewFallbackGenerator(primary, secondary TextGenerator) *FallbackGenerator {
	return &FallbackGenerator{primary: primary, secondary: secondary}
}

// GenerateText implements TextGenerator with the single-fallback contract.
func (g *FallbackGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.primary == nil {
		return "", fmt.Errorf("no generator configured")
	}
	text, primaryErr := g.primary.GenerateText(ctx, systemPrompt, userPrompt)
	if primaryErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if primaryErr == nil {
		primaryErr = fmt.Errorf("empty output from primary model")
	}
	if g.secondary == nil {
		return "", primaryErr
	}
	text, secondaryErr := g.secondary.GenerateText(ctx, systemPrompt, userPrompt)
	if secondaryErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if secondaryErr == nil {
		secondaryErr = fmt.Errorf("empty output from secondary model")
	}
	return "", fmt.Errorf("primary: %v; secondary: %w", primaryErr, secondaryErr)
}
