package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docfolio/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateBatch inserts all documents of one ingestion batch together, keeping
// the positions they were assigned.
func (r *DocumentRepository) CreateBatch(documents []model.Document) error {
	if len(documents) == 0 {
		return nil
	}
	if err := r.db.Create(&documents).Error; err != nil {
		return fmt.Errorf("create documents failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListByWorkspaceID(workspaceID string) ([]model.Document, error) {
	var documents []model.Document
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("position ASC").Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return documents, nil
}

func (r *DocumentRepository) GetByID(documentID string) (*model.Document, error) {
	var document model.Document
	if err := r.db.Where("id = ?", documentID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &document, nil
}

func (r *DocumentRepository) DeleteByID(documentID string) error {
	if err := r.db.Where("id = ?", documentID).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) DeleteByWorkspaceID(workspaceID string) error {
	if err := r.db.Where("workspace_id = ?", workspaceID).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete workspace documents failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) CountByWorkspaceID(workspaceID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Document{}).Where("workspace_id = ?", workspaceID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count documents failed: %w", err)
	}
	return count, nil
}

// MaxPosition returns the highest position in the workspace, 0 when empty.
func (r *DocumentRepository) MaxPosition(workspaceID string) (int, error) {
	var max *int
	if err := r.db.Model(&model.Document{}).
		Where("workspace_id = ?", workspaceID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("query max document position failed: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
