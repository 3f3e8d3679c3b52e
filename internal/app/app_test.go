package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"draftforge/pkg/domain"
	"draftforge/pkg/store"
)

// scriptGenerator returns queued outputs in order and records prompts.
type scriptGenerator struct {
	outputs []string
	err     error
	prompts []string
}

func (g *scriptGenerator) GenerateText(_ context.Context, _, userPrompt string) (string, error) {
	g.prompts = append(g.prompts, userPrompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return "", errors.New("script exhausted")
	}
	out := g.outputs[0]
	g.outputs = g.outputs[1:]
	return out, nil
}

func newTestApp(t *testing.T, gen *scriptGenerator) *App {
	t.Helper()
	if gen == nil {
		gen = &scriptGenerator{}
	}
	sessions, err := store.NewJWTSessionStore("test-secret-key", time.Hour, store.JWTOptions{})
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	a, err := New(Config{
		Store:     store.NewMemoryStore(),
		Sessions:  sessions,
		Generator: gen,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func registerTestUser(t *testing.T, a *App, email string) domain.User {
	t.Helper()
	user, _, err := a.Register(email, "pw123456", "Test User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func createWordProject(t *testing.T, a *App, owner domain.User) domain.Project {
	t.Helper()
	project, err := a.CreateProject(owner, ProjectInput{
		Title:        "Q1 Report",
		Topic:        "quarterly sales",
		DocumentType: "docx",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func createSlideProject(t *testing.T, a *App, owner domain.User, itemTitles ...string) domain.Project {
	t.Helper()
	project, err := a.CreateProject(owner, ProjectInput{
		Title:        "Launch Deck",
		Topic:        "product launch",
		DocumentType: "pptx",
		ItemTitles:   itemTitles,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

// fillItem generates content for one item, consuming the next scripted
// model output.
func fillItem(t *testing.T, a *App, owner domain.User, project domain.Project, itemID string) domain.ContentItem {
	t.Helper()
	item, err := a.GenerateContent(context.Background(), owner, project.ID, itemID, "")
	if err != nil {
		t.Fatalf("generate content: %v", err)
	}
	return item
}

// itemsTitled builds empty content items for a project patch.
func itemsTitled(titles ...string) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(titles))
	for i, title := range titles {
		items = append(items, domain.ContentItem{Title: title, Order: i + 1})
	}
	return items
}

func wantOrders(t *testing.T, items []domain.ContentItem, want int) {
	t.Helper()
	if len(items) != want {
		t.Fatalf("item count = %d, want %d", len(items), want)
	}
	for i, item := range items {
		if item.Order != i+1 {
			t.Fatalf("order[%d] = %d, want contiguous 1..N", i, item.Order)
		}
	}
}

func wantValidation(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
