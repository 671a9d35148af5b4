package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docfolio/internal/model"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) Create(workspace *model.Workspace) error {
	if err := r.db.Create(workspace).Error; err != nil {
		return fmt.Errorf("create workspace failed: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) ListByUserID(userID uint) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&workspaces).Error; err != nil {
		return nil, fmt.Errorf("list workspaces failed: %w", err)
	}
	return workspaces, nil
}

func (r *WorkspaceRepository) GetByIDAndUserID(workspaceID string, userID uint) (*model.Workspace, error) {
	var workspace model.Workspace
	if err := r.db.Where("id = ? AND user_id = ?", workspaceID, userID).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace failed: %w", err)
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) Update(workspace *model.Workspace) error {
	if err := r.db.Save(workspace).Error; err != nil {
		return fmt.Errorf("update workspace failed: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) DeleteByIDAndUserID(workspaceID string, userID uint) error {
	if err := r.db.Where("id = ? AND user_id = ?", workspaceID, userID).Delete(&model.Workspace{}).Error; err != nil {
		return fmt.Errorf("delete workspace failed: %w", err)
	}
	return nil
}
