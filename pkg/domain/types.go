package domain

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocTypeWord  DocumentType = "docx"
	DocTypeSlide DocumentType = "pptx"
)

// ParseDocumentType validates and normalizes a document type string.
func ParseDocumentType(raw string) (DocumentType, bool) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(raw))) {
	case DocTypeWord:
		return DocTypeWord, true
	case DocTypeSlide:
		return DocTypeSlide, true
	default:
		return "", false
	}
}

type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusGenerating ProjectStatus = "generating"
	StatusCompleted  ProjectStatus = "completed"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio,omitempty"`
	Company      string    `json:"company,omitempty"`
	Title        string    `json:"title,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ContentItem is a section of a word document or a slide of a deck.
// Text carries section prose; Bullets carries slide bullet points.
// Order is 1-based and contiguous within a project.
type ContentItem struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Order       int        `json:"order"`
	Title       string     `json:"title"`
	Text        string     `json:"text,omitempty"`
	Bullets     []string   `json:"bullets,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
}

// HasContent reports whether the item carries generated content for the
// given document type.
func (c ContentItem) HasContent(docType DocumentType) bool {
	if docType == DocTypeSlide {
		return len(c.Bullets) > 0
	}
	return strings.TrimSpace(c.Text) != ""
}

type Project struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"ownerId"`
	Title        string        `json:"title"`
	Topic        string        `json:"topic"`
	Description  string        `json:"description,omitempty"`
	DocumentType DocumentType  `json:"documentType"`
	Status       ProjectStatus `json:"status"`
	Items        []ContentItem `json:"items"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Item returns the content item with the given ID.
func (p Project) Item(itemID string) (ContentItem, bool) {
	for _, item := range p.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return ContentItem{}, false
}

// PendingRefinement is the single outstanding AI proposal for a content
// item. A new refine call replaces it; accept copies it into the item and
// discards it; reject discards it.
type PendingRefinement struct {
	ItemID      string    `json:"itemId"`
	ProjectID   string    `json:"projectId"`
	Instruction string    `json:"instruction"`
	Text        string    `json:"text,omitempty"`
	Bullets     []string  `json:"bullets,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Feedback is an append-only reaction to a content item.
type Feedback struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	ItemID    string    `json:"itemId"`
	Liked     *bool     `json:"liked,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
