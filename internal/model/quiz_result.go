package model

import "time"

// QuizResult is the durable residue of one completed quiz session.
// Immutable after creation.
type QuizResult struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	WorkspaceID    string    `gorm:"size:36;index" json:"workspace_id,omitempty"`
	Topic          string    `gorm:"size:256" json:"topic"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	Difficulty     string    `gorm:"size:32" json:"difficulty"`
	CompletedAt    time.Time `json:"completed_at"`
}
