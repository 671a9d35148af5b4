package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docfolio/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByWorkspaceID(workspaceID string, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	var messages []model.Message
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("seq ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

// ListAllByWorkspaceID returns the complete conversation without a window
// limit. Backup export depends on this being unbounded.
func (r *MessageRepository) ListAllByWorkspaceID(workspaceID string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("seq ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list all messages failed: %w", err)
	}
	return messages, nil
}

// ListRecentByWorkspaceID returns the last n messages in chronological order.
func (r *MessageRepository) ListRecentByWorkspaceID(workspaceID string, n int) ([]model.Message, error) {
	if n <= 0 {
		n = 50
	}

	var messages []model.Message
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("seq DESC").Limit(n).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list recent messages failed: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *MessageRepository) GetByID(messageID string) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("id = ?", messageID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message failed: %w", err)
	}
	return &message, nil
}

// Update persists flag and reaction mutations. The message log itself is
// append-only; content and ordering are never changed here.
func (r *MessageRepository) Update(message *model.Message) error {
	if err := r.db.Save(message).Error; err != nil {
		return fmt.Errorf("update message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) DeleteByWorkspaceID(workspaceID string) error {
	if err := r.db.Where("workspace_id = ?", workspaceID).Delete(&model.Message{}).Error; err != nil {
		return fmt.Errorf("delete workspace messages failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) CountByWorkspaceID(workspaceID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Message{}).Where("workspace_id = ?", workspaceID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count messages failed: %w", err)
	}
	return count, nil
}
