package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"draftforge/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&UserModel{},
		&ProjectModel{},
		&ContentItemModel{},
		&PendingRefinementModel{},
		&FeedbackModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser registers or updates a user.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "password_hash", "bio", "company", "title", "location", "updated_at"}),
	}).Create(&model).Error
}

// HasUserEmail checks if email exists.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// SaveProject stores or updates a project and replaces its items.
func (s *GormStore) SaveProject(p domain.Project) error {
	model := projectToModel(p)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_id", "title", "topic", "description", "document_type", "status", "updated_at"}),
		}).Create(&model).Error; err != nil {
			return err
		}
		return replaceItemsTx(tx, p.ID, p.Items)
	})
}

// GetProject retrieves a project with its items in order.
func (s *GormStore) GetProject(id string) (domain.Project, bool, error) {
	var model ProjectModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Project{}, false, nil
		}
		return domain.Project{}, false, err
	}
	items, err := s.listItems(id)
	if err != nil {
		return domain.Project{}, false, err
	}
	project := projectFromModel(model)
	project.Items = items
	return project, true, nil
}

// ListProjectsByOwner returns the owner's projects, newest first.
func (s *GormStore) ListProjectsByOwner(ownerID string, filter ProjectFilter) ([]domain.Project, error) {
	tx := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC")
	if filter.DocumentType != "" {
		tx = tx.Where("document_type = ?", string(filter.DocumentType))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(topic) LIKE ?", pattern, pattern)
	}
	if filter.Skip > 0 {
		tx = tx.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	var models []ProjectModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Project, 0, len(models))
	for _, m := range models {
		project := projectFromModel(m)
		items, err := s.listItems(m.ID)
		if err != nil {
			return nil, err
		}
		project.Items = items
		res = append(res, project)
	}
	return res, nil
}

// DeleteProject removes the project and everything hanging off it.
func (s *GormStore) DeleteProject(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&FeedbackModel{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PendingRefinementModel{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ContentItemModel{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ProjectModel{}, "id = ?", id).Error
	})
}

// ReplaceItems swaps all content items of a project.
func (s *GormStore) ReplaceItems(projectID string, items []domain.ContentItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return replaceItemsTx(tx, projectID, items)
	})
}

// SaveItem updates a single content item in place.
func (s *GormStore) SaveItem(item domain.ContentItem) error {
	model := itemToModel(item)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"order_index", "title", "text", "bullets", "generated_at"}),
	}).Create(&model).Error
}

// SavePendingRefinement upserts the single pending proposal for an item.
func (s *GormStore) SavePendingRefinement(p domain.PendingRefinement) error {
	model := pendingToModel(p)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"project_id", "instruction", "text", "bullets", "created_at"}),
	}).Create(&model).Error
}

// GetPendingRefinement returns the pending proposal for an item, if any.
func (s *GormStore) GetPendingRefinement(itemID string) (domain.PendingRefinement, bool, error) {
	var model PendingRefinementModel
	if err := s.db.First(&model, "item_id = ?", itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PendingRefinement{}, false, nil
		}
		return domain.PendingRefinement{}, false, err
	}
	return pendingFromModel(model), true, nil
}

// DeletePendingRefinement discards the pending proposal. Missing rows are not an error.
func (s *GormStore) DeletePendingRefinement(itemID string) error {
	return s.db.Delete(&PendingRefinementModel{}, "item_id = ?", itemID).Error
}

// AppendFeedback records a feedback entry.
func (s *GormStore) AppendFeedback(f domain.Feedback) error {
	model := feedbackToModel(f)
	return s.db.Create(&model).Error
}

// ListFeedbackByItem returns feedback for an item in chronological order.
func (s *GormStore) ListFeedbackByItem(itemID string) ([]domain.Feedback, error) {
	var models []FeedbackModel
	if err := s.db.Where("item_id = ?", itemID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Feedback, 0, len(models))
	for _, m := range models {
		res = append(res, feedbackFromModel(m))
	}
	return res, nil
}

func (s *GormStore) listItems(projectID string) ([]domain.ContentItem, error) {
	var models []ContentItemModel
	if err := s.db.Where("project_id = ?", projectID).Order("order_index ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]domain.ContentItem, 0, len(models))
	for _, m := range models {
		items = append(items, itemFromModel(m))
	}
	return items, nil
}

func replaceItemsTx(tx *gorm.DB, projectID string, items []domain.ContentItem) error {
	if err := tx.Delete(&ContentItemModel{}, "project_id = ?", projectID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	models := make([]ContentItemModel, 0, len(items))
	for _, item := range items {
		model := itemToModel(item)
		model.ProjectID = projectID
		models = append(models, model)
	}
	return tx.CreateInBatches(&models, 100).Error
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		Company:      u.Company,
		Title:        u.Title,
		Location:     u.Location,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Bio:          m.Bio,
		Company:      m.Company,
		Title:        m.Title,
		Location:     m.Location,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func projectToModel(p domain.Project) ProjectModel {
	return ProjectModel{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Topic:        p.Topic,
		Description:  p.Description,
		DocumentType: string(p.DocumentType),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func projectFromModel(m ProjectModel) domain.Project {
	return domain.Project{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Topic:        m.Topic,
		Description:  m.Description,
		DocumentType: domain.DocumentType(m.DocumentType),
		Status:       domain.ProjectStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func itemToModel(item domain.ContentItem) ContentItemModel {
	var bullets []byte
	if len(item.Bullets) > 0 {
		bullets, _ = json.Marshal(item.Bullets)
	}
	return ContentItemModel{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		OrderIndex:  item.Order,
		Title:       item.Title,
		Text:        item.Text,
		Bullets:     bullets,
		GeneratedAt: item.GeneratedAt,
	}
}

func itemFromModel(m ContentItemModel) domain.ContentItem {
	var bullets []string
	if len(m.Bullets) > 0 {
		_ = json.Unmarshal(m.Bullets, &bullets)
	}
	return domain.ContentItem{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Order:       m.OrderIndex,
		Title:       m.Title,
		Text:        m.Text,
		Bullets:     bullets,
		GeneratedAt: m.GeneratedAt,
	}
}

func pendingToModel(p domain.PendingRefinement) PendingRefinementModel {
	var bullets []byte
	if len(p.Bullets) > 0 {
		bullets, _ = json.Marshal(p.Bullets)
	}
	return PendingRefinementModel{
		ItemID:      p.ItemID,
		ProjectID:   p.ProjectID,
		Instruction: p.Instruction,
		Text:        p.Text,
		Bullets:     bullets,
		CreatedAt:   p.CreatedAt,
	}
}

func pendingFromModel(m PendingRefinementModel) domain.PendingRefinement {
	var bullets []string
	if len(m.Bullets) > 0 {
		_ = json.Unmarshal(m.Bullets, &bullets)
	}
	return domain.PendingRefinement{
		ItemID:      m.ItemID,
		ProjectID:   m.ProjectID,
		Instruction: m.Instruction,
		Text:        m.Text,
		Bullets:     bullets,
		CreatedAt:   m.CreatedAt,
	}
}

func feedbackToModel(f domain.Feedback) FeedbackModel {
	return FeedbackModel{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		ItemID:    f.ItemID,
		Liked:     f.Liked,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func feedbackFromModel(m FeedbackModel) domain.Feedback {
	return domain.Feedback{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		ItemID:    m.ItemID,
		Liked:     m.Liked,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
