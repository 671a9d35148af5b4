package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"docfolio/internal/ingest"
	"docfolio/internal/model"
)

var (
	ErrEmptyBatch    = errors.New("upload batch is empty")
	ErrBatchTooLarge = errors.New("upload batch exceeds limits")
)

type IngestService struct {
	workspaceRepo WorkspaceStore
	documentRepo  DocumentStore
	pipeline      *ingest.Pipeline
	maxFileBytes  int64
	maxBatchFiles int
}

func NewIngestService(
	workspaceRepo WorkspaceStore,
	documentRepo DocumentStore,
	pipeline *ingest.Pipeline,
	maxFileSizeMB, maxBatchFiles int,
) *IngestService {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 20
	}
	if maxBatchFiles <= 0 {
		maxBatchFiles = 10
	}
	return &IngestService{
		workspaceRepo: workspaceRepo,
		documentRepo:  documentRepo,
		pipeline:      pipeline,
		maxFileBytes:  int64(maxFileSizeMB) * 1024 * 1024,
		maxBatchFiles: maxBatchFiles,
	}
}

type UploadInput struct {
	UserID      uint
	WorkspaceID string
	Files       []ingest.File
}

// FailedFile reports one file whose extraction failed.
type FailedFile struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type UploadResult struct {
	Documents []model.Document `json:"documents"`
	Failed    []FailedFile     `json:"failed"`
}

// Upload runs the ingestion pipeline over the batch and appends the resulting
// documents to the workspace. Extraction results are collected in full before
// any document row is written, so documents land in presentation order and a
// failing file never blocks the rest of the batch.
func (s *IngestService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.UserID == 0 || input.WorkspaceID == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Files) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(input.Files) > s.maxBatchFiles {
		return nil, ErrBatchTooLarge
	}
	for _, f := range input.Files {
		if int64(len(f.Data)) > s.maxFileBytes {
			return nil, ErrBatchTooLarge
		}
	}

	workspace, err := s.workspaceRepo.GetByIDAndUserID(input.WorkspaceID, input.UserID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	extracted, failures := s.pipeline.ExtractBatch(ctx, input.Files)

	maxPosition, err := s.documentRepo.MaxPosition(input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	documents := make([]model.Document, 0, len(extracted))
	for i, item := range extracted {
		documents = append(documents, model.Document{
			ID:          uuid.NewString(),
			WorkspaceID: input.WorkspaceID,
			Name:        item.Name,
			Content:     item.Content,
			SourceType:  item.SourceType,
			SizeBytes:   item.SizeBytes,
			Position:    maxPosition + i + 1,
		})
	}
	if err := s.documentRepo.CreateBatch(documents); err != nil {
		return nil, err
	}
	if len(documents) > 0 {
		// Bumps updated_at so the workspace surfaces at the top of listings.
		if err := s.workspaceRepo.Update(workspace); err != nil {
			return nil, err
		}
	}

	failed := make([]FailedFile, 0, len(failures))
	for _, f := range failures {
		failed = append(failed, FailedFile{Filename: f.Filename, Error: f.Err.Error()})
	}
	return &UploadResult{Documents: documents, Failed: failed}, nil
}

// ListDocuments returns the workspace's documents in ingestion order.
func (s *IngestService) ListDocuments(userID uint, workspaceID string) ([]model.Document, error) {
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
	return s.documentRepo.ListByWorkspaceID(workspaceID)
}

var ErrDocumentNotFound = errors.New("document not found")

// DeleteDocument removes one document after checking workspace ownership.
func (s *IngestService) DeleteDocument(userID uint, documentID string) error {
	if userID == 0 || documentID == "" {
		return ErrInvalidInput
	}
	document, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if document == nil {
		return ErrDocumentNotFound
	}
	workspace, err := s.workspaceRepo.GetByIDAndUserID(document.WorkspaceID, userID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrDocumentNotFound
	}
	return s.documentRepo.DeleteByID(documentID)
}
