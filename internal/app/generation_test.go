package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"draftforge/pkg/domain"
)

func TestGenerateOutlineReplacesItems(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{joinLines("1. Introduction", "2. Findings", "3. Outlook")}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)

	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 3)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}
	wantOrders(t, project.Items, 3)
	if project.Items[0].Title != "Introduction" || project.Items[2].Title != "Outlook" {
		t.Fatalf("unexpected titles: %+v", project.Items)
	}
	for _, item := range project.Items {
		if item.HasContent(project.DocumentType) {
			t.Fatal("outline stubs must start without content")
		}
	}
}

func TestGenerateOutlinePadsShortModelOutput(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{"Only Title"}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)

	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 3)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}
	wantOrders(t, project.Items, 3)
	if project.Items[1].Title != "Section 2" || project.Items[2].Title != "Section 3" {
		t.Fatalf("missing generic pad titles: %+v", project.Items)
	}
}

func TestGenerateOutlineValidation(t *testing.T) {
	a := newTestApp(t, nil)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)

	_, err := a.GenerateOutline(context.Background(), owner, project.ID, 0)
	wantValidation(t, err)
	_, err = a.GenerateOutline(context.Background(), owner, project.ID, maxOutlineCount+1)
	wantValidation(t, err)
}

func TestGenerateContentForDocument(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{
		joinLines("Intro", "Detail"),
		"The quarter closed strongly across all regions.",
	}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 2)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}

	item, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[0].ID, "focus on revenue")
	if err != nil {
		t.Fatalf("generate content: %v", err)
	}
	if item.Text == "" || item.GeneratedAt == nil {
		t.Fatalf("item not filled: %+v", item)
	}
	if !strings.Contains(gen.prompts[len(gen.prompts)-1], "focus on revenue") {
		t.Fatal("custom instruction missing from prompt")
	}
}

func TestGenerateContentForDeckParsesBullets(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{joinLines("- First point", "- Second point", "", "* Third point")}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createSlideProject(t, a, owner, "Opening")

	item, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[0].ID, "")
	if err != nil {
		t.Fatalf("generate content: %v", err)
	}
	if len(item.Bullets) != 3 || item.Bullets[0] != "First point" {
		t.Fatalf("bullets = %+v", item.Bullets)
	}
	if item.Text != "" {
		t.Fatal("deck items must not carry prose")
	}
}

func TestGenerateContentUsesPriorItemsContext(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{
		joinLines("Intro", "Detail"),
		"Opening prose about revenue.",
		"Later section prose.",
	}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 2)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}
	if _, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[0].ID, ""); err != nil {
		t.Fatalf("generate first item: %v", err)
	}
	if _, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[1].ID, ""); err != nil {
		t.Fatalf("generate second item: %v", err)
	}
	last := gen.prompts[len(gen.prompts)-1]
	if !strings.Contains(last, "Opening prose about revenue.") {
		t.Fatal("prior item content missing from second prompt")
	}
}

func TestGenerateContentSurfacesFailure(t *testing.T) {
	gen := &scriptGenerator{err: errors.New("model unavailable")}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createSlideProject(t, a, owner, "Opening")

	_, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[0].ID, "")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateContentUnknownItem(t *testing.T) {
	a := newTestApp(t, nil)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	_, err := a.GenerateContent(context.Background(), owner, project.ID, "missing", "")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGenerateAllFillsOnlyEmptyItems(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{
		joinLines("Intro", "Body", "Close"),
		"Prefilled intro text.",
		"Generated body.",
		"Generated close.",
	}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 3)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}
	if _, err := a.GenerateContent(context.Background(), owner, project.ID, project.Items[0].ID, ""); err != nil {
		t.Fatalf("prefill first item: %v", err)
	}
	promptsBefore := len(gen.prompts)

	project, err = a.GenerateAll(context.Background(), owner, project.ID)
	if err != nil {
		t.Fatalf("generate all: %v", err)
	}
	if got := len(gen.prompts) - promptsBefore; got != 2 {
		t.Fatalf("generate-all made %d model calls, want 2", got)
	}
	for _, item := range project.Items {
		if !item.HasContent(domain.DocTypeWord) {
			t.Fatalf("item %q still empty", item.Title)
		}
	}
	if project.Status != domain.StatusDraft {
		t.Fatalf("status after generate-all = %q, want draft", project.Status)
	}
}

func TestGenerateAllStopsAtFirstFailure(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{
		joinLines("Intro", "Body"),
		"Generated intro.",
	}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, err := a.GenerateOutline(context.Background(), owner, project.ID, 2)
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}

	_, err = a.GenerateAll(context.Background(), owner, project.ID)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	// The successful first item stays persisted.
	project, err = a.GetProject(owner, project.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if !project.Items[0].HasContent(domain.DocTypeWord) {
		t.Fatal("first item should keep its generated content")
	}
	if project.Items[1].HasContent(domain.DocTypeWord) {
		t.Fatal("second item must stay empty after failure")
	}
}
