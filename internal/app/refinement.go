package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftforge/pkg/domain"
)

// Refine asks the model for a revised version of the item's content and
// stores it as the single pending proposal for that item. A later refine
// call replaces the proposal; nothing touches the stable content until
// the user accepts.
func (a *App) Refine(ctx context.Context, owner domain.User, projectID, itemID, instruction string) (domain.PendingRefinement, error) {
	if strings.TrimSpace(instruction) == "" {
		return domain.PendingRefinement{}, fmt.Errorf("%w: instruction is required", ErrValidation)
	}
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.PendingRefinement{}, err
	}
	item, found := project.Item(itemID)
	if !found {
		return domain.PendingRefinement{}, ErrItemNotFound
	}
	if !item.HasContent(project.DocumentType) {
		return domain.PendingRefinement{}, fmt.Errorf("%w: item has no content to refine", ErrValidation)
	}

	raw, err := a.generate(ctx, refineSystemPrompt, refinePrompt(project, item, instruction))
	if err != nil {
		return domain.PendingRefinement{}, err
	}
	pending := domain.PendingRefinement{
		ItemID:      item.ID,
		ProjectID:   project.ID,
		Instruction: strings.TrimSpace(instruction),
		CreatedAt:   time.Now().UTC(),
	}
	if project.DocumentType == domain.DocTypeSlide {
		bullets := parseLines(raw)
		if len(bullets) == 0 {
			return domain.PendingRefinement{}, ErrGenerationFailed
		}
		pending.Bullets = bullets
	} else {
		pending.Text = strings.TrimSpace(raw)
	}
	if err := a.store.SavePendingRefinement(pending); err != nil {
		return domain.PendingRefinement{}, fmt.Errorf("save pending refinement: %w", err)
	}
	return pending, nil
}

// Accept copies the pending proposal into the item and clears it.
func (a *App) Accept(owner domain.User, projectID, itemID string) (domain.ContentItem, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.ContentItem{}, err
	}
	item, found := project.Item(itemID)
	if !found {
		return domain.ContentItem{}, ErrItemNotFound
	}
	pending, exists, err := a.store.GetPendingRefinement(item.ID)
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("load pending refinement: %w", err)
	}
	if !exists {
		return domain.ContentItem{}, ErrNoPendingRefinement
	}
	if project.DocumentType == domain.DocTypeSlide {
		item.Bullets = pending.Bullets
		item.Text = ""
	} else {
		item.Text = pending.Text
		item.Bullets = nil
	}
	now := time.Now().UTC()
	item.GeneratedAt = &now
	if err := a.store.SaveItem(item); err != nil {
		return domain.ContentItem{}, fmt.Errorf("save item: %w", err)
	}
	if err := a.store.DeletePendingRefinement(item.ID); err != nil {
		return domain.ContentItem{}, fmt.Errorf("clear pending refinement: %w", err)
	}
	return item, nil
}

// Reject discards any pending proposal. Rejecting with nothing pending
// is a no-op so the call is idempotent.
func (a *App) Reject(owner domain.User, projectID, itemID string) error {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return err
	}
	item, found := project.Item(itemID)
	if !found {
		return ErrItemNotFound
	}
	if err := a.store.DeletePendingRefinement(item.ID); err != nil {
		return fmt.Errorf("clear pending refinement: %w", err)
	}
	return nil
}

// PendingFor returns the outstanding proposal for an item, if any.
func (a *App) PendingFor(owner domain.User, projectID, itemID string) (domain.PendingRefinement, bool, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.PendingRefinement{}, false, err
	}
	item, found := project.Item(itemID)
	if !found {
		return domain.PendingRefinement{}, false, ErrItemNotFound
	}
	pending, exists, err := a.store.GetPendingRefinement(item.ID)
	if err != nil {
		return domain.PendingRefinement{}, false, fmt.Errorf("load pending refinement: %w", err)
	}
	return pending, exists, nil
}

// AddFeedback appends a reaction record for an item. Liked may be nil for
// comment-only feedback.
func (a *App) AddFeedback(owner domain.User, projectID, itemID string, liked *bool, comment string) (domain.Feedback, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return domain.Feedback{}, err
	}
	item, found := project.Item(itemID)
	if !found {
		return domain.Feedback{}, ErrItemNotFound
	}
	comment = strings.TrimSpace(comment)
	if liked == nil && comment == "" {
		return domain.Feedback{}, fmt.Errorf("%w: feedback needs a sentiment or a comment", ErrValidation)
	}
	feedback := domain.Feedback{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		ItemID:    item.ID,
		Liked:     liked,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.AppendFeedback(feedback); err != nil {
		return domain.Feedback{}, fmt.Errorf("append feedback: %w", err)
	}
	return feedback, nil
}

// ItemHistory bundles an item's feedback trail with its pending proposal.
type ItemHistory struct {
	Item     domain.ContentItem        `json:"item"`
	Feedback []domain.Feedback         `json:"feedback"`
	Pending  *domain.PendingRefinement `json:"pending,omitempty"`
}

// HistoryFor returns the feedback records and pending state of an item.
func (a *App) HistoryFor(owner domain.User, projectID, itemID string) (ItemHistory, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return ItemHistory{}, err
	}
	item, found := project.Item(itemID)
	if !found {
		return ItemHistory{}, ErrItemNotFound
	}
	feedback, err := a.store.ListFeedbackByItem(item.ID)
	if err != nil {
		return ItemHistory{}, fmt.Errorf("list feedback: %w", err)
	}
	history := ItemHistory{Item: item, Feedback: feedback}
	if pending, exists, err := a.store.GetPendingRefinement(item.ID); err != nil {
		return ItemHistory{}, fmt.Errorf("load pending refinement: %w", err)
	} else if exists {
		history.Pending = &pending
	}
	return history, nil
}
