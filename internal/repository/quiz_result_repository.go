package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docfolio/internal/model"
)

type QuizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("create quiz result failed: %w", err)
	}
	return nil
}

func (r *QuizResultRepository) ListByUserID(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	if err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list quiz results failed: %w", err)
	}
	return results, nil
}
