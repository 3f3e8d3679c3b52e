package store

import "draftforge/pkg/domain"

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Search       string
	DocumentType domain.DocumentType
	Skip         int
	Limit        int
}

// Store defines persistence for users, projects, content items,
// pending refinements, and feedback.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// projects (ownership checks happen in the app layer)
	SaveProject(domain.Project) error
	GetProject(id string) (domain.Project, bool, error)
	ListProjectsByOwner(ownerID string, filter ProjectFilter) ([]domain.Project, error)
	DeleteProject(id string) error

	// content items
	ReplaceItems(projectID string, items []domain.ContentItem) error
	SaveItem(domain.ContentItem) error

	// pending refinements, at most one per item (upsert = last write wins)
	SavePendingRefinement(domain.PendingRefinement) error
	GetPendingRefinement(itemID string) (domain.PendingRefinement, bool, error)
	DeletePendingRefinement(itemID string) error

	// feedback, append-only
	AppendFeedback(domain.Feedback) error
	ListFeedbackByItem(itemID string) ([]domain.Feedback, error)
}

// SessionStore issues and resolves bearer tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
}
