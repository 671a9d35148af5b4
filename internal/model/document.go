package model

import "time"

// Document is the plain-text projection of one uploaded file. Content is
// always normalized UTF-8 text, never the original binary. Rows are immutable
// after creation except for deletion.
type Document struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	WorkspaceID string    `gorm:"size:36;not null;index" json:"workspace_id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Content     string    `gorm:"type:longtext;not null" json:"content"`
	SourceType  string    `gorm:"size:128" json:"source_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Position    int       `gorm:"not null" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}
