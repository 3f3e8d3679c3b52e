package ai

import (
	"context"
	"errors"
	"testing"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateText(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &stubGenerator{text: "primary output"}
	secondary := &stubGenerator{text: "secondary output"}
	g := NewFallbackGenerator(primary, secondary)

	text, err := g.GenerateText(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "primary output" {
		t.Fatalf("expected primary output, got %q", text)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary must not be called, got %d calls", secondary.calls)
	}
}

func TestFallbackOnPrimaryError(t *testing.T) {
	primary := &stubGenerator{err: errors.New("quota exceeded")}
	secondary := &stubGenerator{text: "secondary output"}
	g := NewFallbackGenerator(primary, secondary)

	text, err := g.GenerateText(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "secondary output" {
		t.Fatalf("expected secondary output, got %q", text)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected one call each, got primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestFallbackOnEmptyPrimaryOutput(t *testing.T) {
	primary := &stubGenerator{text: "   "}
	secondary := &stubGenerator{text: "secondary output"}
	g := NewFallbackGenerator(primary, secondary)

	text, err := g.GenerateText(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "secondary output" {
		t.Fatalf("expected secondary output, got %q", text)
	}
}

func TestFallbackSurfacesFailureWhenBothFail(t *testing.T) {
	primary := &stubGenerator{err: errors.New("primary down")}
	secondary := &stubGenerator{err: errors.New("secondary down")}
	g := NewFallbackGenerator(primary, secondary)

	if _, err := g.GenerateText(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected error when both generators fail")
	}
	// Exactly one attempt each, no extra retries.
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected one call each, got primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestFallbackWithoutSecondary(t *testing.T) {
	primary := &stubGenerator{err: errors.New("primary down")}
	g := NewFallbackGenerator(primary, nil)
	if _, err := g.GenerateText(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected primary error to surface without secondary")
	}
}
