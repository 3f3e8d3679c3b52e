package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftforge/pkg/domain"
	"draftforge/pkg/store"
)

// ProjectInput carries fields for creating a project.
type ProjectInput struct {
	Title        string
	Topic        string
	Description  string
	DocumentType string
	ItemTitles   []string
}

// ProjectPatch carries optional fields for a partial project update.
type ProjectPatch struct {
	Title       *string
	Topic       *string
	Description *string
	Items       []domain.ContentItem
}

// CreateProject validates input and stores a new draft project. Seed item
// titles become empty content items ordered 1..N.
func (a *App) CreateProject(owner domain.User, in ProjectInput) (domain.Project, error) {
	title := strings.TrimSpace(in.Title)
	topic := strings.TrimSpace(in.Topic)
	if title == "" || topic == "" {
		return domain.Project{}, fmt.Errorf("%w: title and topic are required", ErrValidation)
	}
	docType, ok := domain.ParseDocumentType(in.DocumentType)
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: document_type must be docx or pptx", ErrValidation)
	}
	now := time.Now().UTC()
	project := domain.Project{
		ID:           uuid.NewString(),
		OwnerID:      owner.ID,
		Title:        title,
		Topic:        topic,
		Description:  strings.TrimSpace(in.Description),
		DocumentType: docType,
		Status:       domain.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, itemTitle := range in.ItemTitles {
		itemTitle = strings.TrimSpace(itemTitle)
		if itemTitle == "" {
			continue
		}
		project.Items = append(project.Items, domain.ContentItem{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			Title:     itemTitle,
		})
	}
	normalizeOrder(project.Items)
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

// ListProjects returns the owner's projects matching the filter.
func (a *App) ListProjects(owner domain.User, filter store.ProjectFilter) ([]domain.Project, error) {
	projects, err := a.store.ListProjectsByOwner(owner.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject loads a project scoped to its owner. Foreign or absent
// projects are both reported as not found.
func (a *App) GetProject(owner domain.User, projectID string) (domain.Project, error) {
	project, found, err := a.store.GetProject(projectID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("load project: %w", err)
	}
	if !found || project.OwnerID != owner.ID {
		return domain.Project{}, ErrProjectNotFound
	}
	return project, nil
}

// UpdateProject applies a partial patch. When the patch replaces items,
// orders are re-indexed to stay contiguous.
func (a *App) UpdateProject(owner domain.User, projectID string, patch ProjectPatch) (domain.Project, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Project{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		project.Title = title
	}
	if patch.Topic != nil {
		topic := strings.TrimSpace(*patch.Topic)
		if topic == "" {
			return domain.Project{}, fmt.Errorf("%w: topic cannot be empty", ErrValidation)
		}
		project.Topic = topic
	}
	if patch.Description != nil {
		project.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Items != nil {
		items := make([]domain.ContentItem, 0, len(patch.Items))
		for _, item := range patch.Items {
			item.Title = strings.TrimSpace(item.Title)
			if item.Title == "" {
				return domain.Project{}, fmt.Errorf("%w: item titles cannot be empty", ErrValidation)
			}
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			item.ProjectID = project.ID
			items = append(items, item)
		}
		normalizeOrder(items)
		project.Items = items
	}
	project.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

// DeleteProject removes the project and everything hanging off it.
func (a *App) DeleteProject(owner domain.User, projectID string) error {
	if _, err := a.GetProject(owner, projectID); err != nil {
		return err
	}
	if err := a.store.DeleteProject(projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// normalizeOrder sorts by the existing order and re-indexes to 1..N so
// indices stay contiguous after any insertion or removal.
func normalizeOrder(items []domain.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	for i := range items {
		items[i].Order = i + 1
	}
}
