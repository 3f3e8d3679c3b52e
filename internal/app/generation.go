package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftforge/internal/metrics"
	"draftforge/internal/util"
	"draftforge/pkg/domain"
)

const maxOutlineCount = 50

// GenerateOutline asks the model for count item titles and replaces the
// project's items with empty stubs ordered 1..count.
func (a *App) GenerateOutline(ctx context.Context, owner domain.User, projectID string, count int) (domain.Project, error) {
	if count <= 0 || count > maxOutlineCount {
		return domain.Project{}, fmt.Errorf("%w: count must be between 1 and %d", ErrValidation, maxOutlineCount)
	}
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.Project{}, err
	}

	raw, err := a.generate(ctx, outlineSystemPrompt, outlinePrompt(project, count))
	if err != nil {
		return domain.Project{}, err
	}
	titles := parseLines(raw)
	if len(titles) > count {
		titles = titles[:count]
	}
	kind := "Section"
	if project.DocumentType == domain.DocTypeSlide {
		kind = "Slide"
	}
	for len(titles) < count {
		titles = append(titles, fmt.Sprintf("%s %d", kind, len(titles)+1))
	}

	items := make([]domain.ContentItem, 0, count)
	for i, title := range titles {
		items = append(items, domain.ContentItem{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			Order:     i + 1,
			Title:     title,
		})
	}
	project.Items = items
	project.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

// GenerateContent fills one item with model output: prose for documents,
// bullet points for decks. An optional instruction steers the model.
func (a *App) GenerateContent(ctx context.Context, owner domain.User, projectID, itemID, instruction string) (domain.ContentItem, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.ContentItem{}, err
	}
	item, found := project.Item(itemID)
	if !found {
		return domain.ContentItem{}, ErrItemNotFound
	}
	item, err = a.generateItem(ctx, project, item, instruction)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if err := a.store.SaveItem(item); err != nil {
		return domain.ContentItem{}, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// GenerateAll fills every item that still lacks content, in order. The
// first failure stops the run; earlier successes stay persisted.
func (a *App) GenerateAll(ctx context.Context, owner domain.User, projectID string) (domain.Project, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	project.Status = domain.StatusGenerating
	project.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}

	for i, item := range project.Items {
		if item.HasContent(project.DocumentType) {
			continue
		}
		filled, err := a.generateItem(ctx, project, item, "")
		if err != nil {
			project.Status = domain.StatusDraft
			_ = a.persistStatus(project)
			return domain.Project{}, fmt.Errorf("item %q: %w", item.Title, err)
		}
		if saveErr := a.store.SaveItem(filled); saveErr != nil {
			project.Status = domain.StatusDraft
			_ = a.persistStatus(project)
			return domain.Project{}, fmt.Errorf("save item: %w", saveErr)
		}
		project.Items[i] = filled
	}

	project.Status = domain.StatusDraft
	if err := a.persistStatus(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (a *App) persistStatus(project domain.Project) error {
	project.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveProject(project); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

func (a *App) generateItem(ctx context.Context, project domain.Project, item domain.ContentItem, instruction string) (domain.ContentItem, error) {
	var systemPrompt string
	if project.DocumentType == domain.DocTypeSlide {
		systemPrompt = slideSystemPrompt
	} else {
		systemPrompt = sectionSystemPrompt
	}
	raw, err := a.generate(ctx, systemPrompt, contentPrompt(project, item, instruction))
	if err != nil {
		return domain.ContentItem{}, err
	}
	if project.DocumentType == domain.DocTypeSlide {
		bullets := parseLines(raw)
		if len(bullets) == 0 {
			return domain.ContentItem{}, ErrGenerationFailed
		}
		item.Bullets = bullets
		item.Text = ""
	} else {
		item.Text = strings.TrimSpace(raw)
		item.Bullets = nil
	}
	now := time.Now().UTC()
	item.GeneratedAt = &now
	return item, nil
}

// generate runs the fallback chain and folds any failure into
// ErrGenerationFailed so handlers map it uniformly.
func (a *App) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	raw, err := a.generator.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		metrics.GenerationAttempts.WithLabelValues("chain", "error").Inc()
		util.LoggerFromContext(ctx).Warn("generation failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(raw) == "" {
		metrics.GenerationAttempts.WithLabelValues("chain", "error").Inc()
		return "", ErrGenerationFailed
	}
	metrics.GenerationAttempts.WithLabelValues("chain", "ok").Inc()
	return raw, nil
}
