package app

import "docfolio/internal/model"

// Store interfaces narrow the persistence surface each service touches.
// *repository.WorkspaceRepository and friends satisfy them.

type WorkspaceStore interface {
	Create(workspace *model.Workspace) error
	ListByUserID(userID uint) ([]model.Workspace, error)
	GetByIDAndUserID(workspaceID string, userID uint) (*model.Workspace, error)
	Update(workspace *model.Workspace) error
	DeleteByIDAndUserID(workspaceID string, userID uint) error
}

type DocumentStore interface {
	CreateBatch(documents []model.Document) error
	ListByWorkspaceID(workspaceID string) ([]model.Document, error)
	GetByID(documentID string) (*model.Document, error)
	DeleteByID(documentID string) error
	DeleteByWorkspaceID(workspaceID string) error
	CountByWorkspaceID(workspaceID string) (int64, error)
	MaxPosition(workspaceID string) (int, error)
}

type MessageStore interface {
	Create(message *model.Message) error
	ListByWorkspaceID(workspaceID string, limit int) ([]model.Message, error)
	ListAllByWorkspaceID(workspaceID string) ([]model.Message, error)
	ListRecentByWorkspaceID(workspaceID string, n int) ([]model.Message, error)
	GetByID(messageID string) (*model.Message, error)
	Update(message *model.Message) error
	DeleteByWorkspaceID(workspaceID string) error
	CountByWorkspaceID(workspaceID string) (int64, error)
}

type QuizResultStore interface {
	Create(result *model.QuizResult) error
	ListByUserID(userID uint) ([]model.QuizResult, error)
}
