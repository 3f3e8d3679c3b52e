package store

import (
	"sort"
	"strings"
	"sync"

	"draftforge/pkg/domain"
)

// MemoryStore keeps everything in-process. It backs tests and local
// development when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	email    map[string]string // email -> user ID
	projects map[string]domain.Project
	pending  map[string]domain.PendingRefinement // item ID -> proposal
	feedback map[string][]domain.Feedback        // item ID -> entries
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		email:    make(map[string]string),
		projects: make(map[string]domain.Project),
		pending:  make(map[string]domain.PendingRefinement),
		feedback: make(map[string][]domain.Feedback),
	}
}

// SaveUser registers or replaces a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.users[u.ID]; ok && prev.Email != u.Email {
		delete(m.email, prev.Email)
	}
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if email exists.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// SaveProject stores or replaces a project, items included.
func (m *MemoryStore) SaveProject(p domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = cloneProject(p)
	return nil
}

// GetProject retrieves a project by ID.
func (m *MemoryStore) GetProject(id string) (domain.Project, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, false, nil
	}
	return cloneProject(p), true, nil
}

// ListProjectsByOwner returns the owner's projects, newest first.
func (m *MemoryStore) ListProjectsByOwner(ownerID string, filter ProjectFilter) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	res := make([]domain.Project, 0)
	for _, p := range m.projects {
		if p.OwnerID != ownerID {
			continue
		}
		if filter.DocumentType != "" && p.DocumentType != filter.DocumentType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Topic), search) {
			continue
		}
		res = append(res, cloneProject(p))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if filter.Skip > 0 {
		if filter.Skip >= len(res) {
			return []domain.Project{}, nil
		}
		res = res[filter.Skip:]
	}
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res, nil
}

// DeleteProject removes a project and its items, pending proposals and feedback.
func (m *MemoryStore) DeleteProject(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil
	}
	for _, item := range p.Items {
		delete(m.pending, item.ID)
		delete(m.feedback, item.ID)
	}
	delete(m.projects, id)
	return nil
}

// ReplaceItems swaps all content items of a project.
func (m *MemoryStore) ReplaceItems(projectID string, items []domain.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok {
		return nil
	}
	p.Items = append([]domain.ContentItem(nil), items...)
	m.projects[projectID] = p
	return nil
}

// SaveItem updates a single content item in place.
func (m *MemoryStore) SaveItem(item domain.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[item.ProjectID]
	if !ok {
		return nil
	}
	for i := range p.Items {
		if p.Items[i].ID == item.ID {
			p.Items[i] = item
			break
		}
	}
	m.projects[item.ProjectID] = p
	return nil
}

// SavePendingRefinement upserts the single pending proposal for an item.
func (m *MemoryStore) SavePendingRefinement(p domain.PendingRefinement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[p.ItemID] = p
	return nil
}

// GetPendingRefinement returns the pending proposal for an item, if any.
func (m *MemoryStore) GetPendingRefinement(itemID string) (domain.PendingRefinement, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pending[itemID]
	return p, ok, nil
}

// DeletePendingRefinement discards the pending proposal, if any.
func (m *MemoryStore) DeletePendingRefinement(itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, itemID)
	return nil
}

// AppendFeedback records a feedback entry.
func (m *MemoryStore) AppendFeedback(f domain.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback[f.ItemID] = append(m.feedback[f.ItemID], f)
	return nil
}

// ListFeedbackByItem returns feedback for an item in chronological order.
func (m *MemoryStore) ListFeedbackByItem(itemID string) ([]domain.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Feedback(nil), m.feedback[itemID]...), nil
}

func cloneProject(p domain.Project) domain.Project {
	out := p
	out.Items = make([]domain.ContentItem, len(p.Items))
	for i, item := range p.Items {
		item.Bullets = append([]string(nil), item.Bullets...)
		out.Items[i] = item
	}
	return out
}
