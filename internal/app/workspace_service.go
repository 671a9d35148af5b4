package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docfolio/internal/model"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrBackupMalformed   = errors.New("backup payload is not a workspace array")
)

type WorkspaceService struct {
	workspaceRepo WorkspaceStore
	documentRepo  DocumentStore
	messageRepo   MessageStore
	historyCache  HistoryCache
}

func NewWorkspaceService(
	workspaceRepo WorkspaceStore,
	documentRepo DocumentStore,
	messageRepo MessageStore,
	historyCache HistoryCache,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		documentRepo:  documentRepo,
		messageRepo:   messageRepo,
		historyCache:  historyCache,
	}
}

type CreateWorkspaceInput struct {
	UserID      uint
	Name        string
	Description string
}

type UpdateWorkspaceInput struct {
	UserID      uint
	WorkspaceID string
	Name        string
	Description string
}

// WorkspaceSummary augments a workspace with its content counts for listing.
type WorkspaceSummary struct {
	model.Workspace
	DocumentCount int64 `json:"document_count"`
	MessageCount  int64 `json:"message_count"`
}

// WorkspaceBackup is one entry of the exported backup array. The format is
// self-describing JSON used for both export and import.
type WorkspaceBackup struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Documents   []model.Document `json:"documents"`
	Messages    []model.Message  `json:"messages"`
}

func (s *WorkspaceService) Create(input CreateWorkspaceInput) (*model.Workspace, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	workspace := &model.Workspace{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.workspaceRepo.Create(workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *WorkspaceService) List(userID uint) ([]WorkspaceSummary, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	workspaces, err := s.workspaceRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]WorkspaceSummary, 0, len(workspaces))
	for _, ws := range workspaces {
		docCount, err := s.documentRepo.CountByWorkspaceID(ws.ID)
		if err != nil {
			return nil, err
		}
		msgCount, err := s.messageRepo.CountByWorkspaceID(ws.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, WorkspaceSummary{
			Workspace:     ws,
			DocumentCount: docCount,
			MessageCount:  msgCount,
		})
	}
	return summaries, nil
}

func (s *WorkspaceService) Get(userID uint, workspaceID string) (*model.Workspace, error) {
	if userID == 0 || workspaceID == "" {
		return nil, ErrInvalidInput
	}
	workspace, err := s.workspaceRepo.GetByIDAndUserID(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (s *WorkspaceService) Update(input UpdateWorkspaceInput) (*model.Workspace, error) {
	workspace, err := s.Get(input.UserID, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		workspace.Name = name
	}
	workspace.Description = strings.TrimSpace(input.Description)

	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// Delete removes the workspace and, transitively, its documents and messages.
func (s *WorkspaceService) Delete(userID uint, workspaceID string) error {
	if _, err := s.Get(userID, workspaceID); err != nil {
		return err
	}

	if err := s.documentRepo.DeleteByWorkspaceID(workspaceID); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteByWorkspaceID(workspaceID); err != nil {
		return err
	}
	if err := s.workspaceRepo.DeleteByIDAndUserID(workspaceID, userID); err != nil {
		return err
	}
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(context.Background(), workspaceID)
	}
	return nil
}

// Export returns all of the user's workspaces with their documents and
// messages as a self-describing backup array.
func (s *WorkspaceService) Export(userID uint) ([]WorkspaceBackup, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	workspaces, err := s.workspaceRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	backup := make([]WorkspaceBackup, 0, len(workspaces))
	for _, ws := range workspaces {
		documents, err := s.documentRepo.ListByWorkspaceID(ws.ID)
		if err != nil {
			return nil, err
		}
		messages, err := s.messageRepo.ListAllByWorkspaceID(ws.ID)
		if err != nil {
			return nil, err
		}
		backup = append(backup, WorkspaceBackup{
			ID:          ws.ID,
			Name:        ws.Name,
			Description: ws.Description,
			CreatedAt:   ws.CreatedAt,
			UpdatedAt:   ws.UpdatedAt,
			Documents:   documents,
			Messages:    messages,
		})
	}
	return backup, nil
}

// Import recreates the workspaces of a backup under the importing user with
// fresh identifiers. A payload whose top level is not an array is rejected.
func (s *WorkspaceService) Import(userID uint, payload []byte) (int, error) {
	if userID == 0 {
		return 0, ErrInvalidInput
	}

	// json.Unmarshal accepts "null" into a slice, so the array shape is
	// checked on the raw payload first.
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, ErrBackupMalformed
	}

	var backup []WorkspaceBackup
	if err := json.Unmarshal(trimmed, &backup); err != nil {
		return 0, ErrBackupMalformed
	}

	imported := 0
	for _, entry := range backup {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		workspace := &model.Workspace{
			ID:          uuid.NewString(),
			UserID:      userID,
			Name:        name,
			Description: entry.Description,
		}
		if err := s.workspaceRepo.Create(workspace); err != nil {
			return imported, err
		}

		documents := make([]model.Document, 0, len(entry.Documents))
		for i, doc := range entry.Documents {
			documents = append(documents, model.Document{
				ID:          uuid.NewString(),
				WorkspaceID: workspace.ID,
				Name:        doc.Name,
				Content:     doc.Content,
				SourceType:  doc.SourceType,
				SizeBytes:   doc.SizeBytes,
				Position:    i + 1,
			})
		}
		if err := s.documentRepo.CreateBatch(documents); err != nil {
			return imported, err
		}

		for _, msg := range entry.Messages {
			restored := msg
			restored.ID = uuid.NewString()
			restored.Seq = 0
			restored.WorkspaceID = workspace.ID
			restored.UserID = userID
			if err := s.messageRepo.Create(&restored); err != nil {
				return imported, err
			}
		}
		imported++
	}
	return imported, nil
}
