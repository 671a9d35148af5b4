package app

import (
	"context"
	"fmt"

	"docfolio/internal/ai"
	"docfolio/internal/model"
)

type fakeWorkspaceStore struct {
	workspaces []model.Workspace
}

func (s *fakeWorkspaceStore) Create(workspace *model.Workspace) error {
	s.workspaces = append(s.workspaces, *workspace)
	return nil
}

func (s *fakeWorkspaceStore) ListByUserID(userID uint) ([]model.Workspace, error) {
	var out []model.Workspace
	for _, ws := range s.workspaces {
		if ws.UserID == userID {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (s *fakeWorkspaceStore) GetByIDAndUserID(workspaceID string, userID uint) (*model.Workspace, error) {
	for _, ws := range s.workspaces {
		if ws.ID == workspaceID && ws.UserID == userID {
			found := ws
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeWorkspaceStore) Update(workspace *model.Workspace) error {
	for i, ws := range s.workspaces {
		if ws.ID == workspace.ID {
			s.workspaces[i] = *workspace
			return nil
		}
	}
	return fmt.Errorf("workspace %s not stored", workspace.ID)
}

func (s *fakeWorkspaceStore) DeleteByIDAndUserID(workspaceID string, userID uint) error {
	for i, ws := range s.workspaces {
		if ws.ID == workspaceID && ws.UserID == userID {
			s.workspaces = append(s.workspaces[:i], s.workspaces[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeDocumentStore struct {
	documents []model.Document
}

func (s *fakeDocumentStore) CreateBatch(documents []model.Document) error {
	s.documents = append(s.documents, documents...)
	return nil
}

func (s *fakeDocumentStore) ListByWorkspaceID(workspaceID string) ([]model.Document, error) {
	var out []model.Document
	for _, doc := range s.documents {
		if doc.WorkspaceID == workspaceID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) GetByID(documentID string) (*model.Document, error) {
	for _, doc := range s.documents {
		if doc.ID == documentID {
			found := doc
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeDocumentStore) DeleteByID(documentID string) error {
	for i, doc := range s.documents {
		if doc.ID == documentID {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeDocumentStore) DeleteByWorkspaceID(workspaceID string) error {
	kept := s.documents[:0]
	for _, doc := range s.documents {
		if doc.WorkspaceID != workspaceID {
			kept = append(kept, doc)
		}
	}
	s.documents = kept
	return nil
}

func (s *fakeDocumentStore) CountByWorkspaceID(workspaceID string) (int64, error) {
	docs, _ := s.ListByWorkspaceID(workspaceID)
	return int64(len(docs)), nil
}

func (s *fakeDocumentStore) MaxPosition(workspaceID string) (int, error) {
	max := 0
	for _, doc := range s.documents {
		if doc.WorkspaceID == workspaceID && doc.Position > max {
			max = doc.Position
		}
	}
	return max, nil
}

type fakeMessageStore struct {
	messages []model.Message
}

func (s *fakeMessageStore) Create(message *model.Message) error {
	s.messages = append(s.messages, *message)
	return nil
}

func (s *fakeMessageStore) ListByWorkspaceID(workspaceID string, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	all, _ := s.ListAllByWorkspaceID(workspaceID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeMessageStore) ListAllByWorkspaceID(workspaceID string) ([]model.Message, error) {
	var out []model.Message
	for _, msg := range s.messages {
		if msg.WorkspaceID == workspaceID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) ListRecentByWorkspaceID(workspaceID string, n int) ([]model.Message, error) {
	if n <= 0 {
		n = 50
	}
	all, _ := s.ListAllByWorkspaceID(workspaceID)
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (s *fakeMessageStore) GetByID(messageID string) (*model.Message, error) {
	for _, msg := range s.messages {
		if msg.ID == messageID {
			found := msg
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeMessageStore) Update(message *model.Message) error {
	for i, msg := range s.messages {
		if msg.ID == message.ID {
			s.messages[i] = *message
			return nil
		}
	}
	return fmt.Errorf("message %s not stored", message.ID)
}

func (s *fakeMessageStore) DeleteByWorkspaceID(workspaceID string) error {
	kept := s.messages[:0]
	for _, msg := range s.messages {
		if msg.WorkspaceID != workspaceID {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
	return nil
}

func (s *fakeMessageStore) CountByWorkspaceID(workspaceID string) (int64, error) {
	all, _ := s.ListAllByWorkspaceID(workspaceID)
	return int64(len(all)), nil
}

// fakePublisher records published messages in order.
type fakePublisher struct {
	published []model.Message
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, msg model.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

type fakeLLM struct {
	answer  string
	rawJSON string
	err     error
}

func (f *fakeLLM) Chat(_ context.Context, _ string, _ []ai.ChatTurn) (string, error) {
	return f.answer, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string) (string, error) {
	return f.rawJSON, f.err
}
