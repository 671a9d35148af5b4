package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docfolio/internal/model"
)

var (
	ErrNoDocuments   = errors.New("workspace has no documents for quiz generation")
	ErrQuizMalformed = errors.New("quiz response failed schema parsing")
)

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 20
	quizOptionCount      = 4
)

// QuizQuestion is one multiple-choice entry of a generated quiz. The JSON
// field names are the model's output schema.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type QuizService struct {
	workspaceRepo WorkspaceStore
	documentRepo  DocumentStore
	resultRepo    QuizResultStore
	llm           LLMClient
}

func NewQuizService(
	workspaceRepo WorkspaceStore,
	documentRepo DocumentStore,
	resultRepo QuizResultStore,
	llm LLMClient,
) *QuizService {
	return &QuizService{
		workspaceRepo: workspaceRepo,
		documentRepo:  documentRepo,
		resultRepo:    resultRepo,
		llm:           llm,
	}
}

type GenerateQuizInput struct {
	UserID      uint
	WorkspaceID string
	Topic       string
	Difficulty  string
	Count       int
}

// Generate builds a quiz from the workspace's documents. A malformed model
// response is fatal for the attempt: no partial quiz state is retained and no
// retry is issued.
func (s *QuizService) Generate(ctx context.Context, input GenerateQuizInput) ([]QuizQuestion, error) {
	if input.UserID == 0 || input.WorkspaceID == "" {
		return nil, ErrInvalidInput
	}
	count := input.Count
	if count <= 0 {
		count = defaultQuestionCount
	}
	if count > maxQuestionCount {
		return nil, ErrInvalidInput
	}
	difficulty := strings.TrimSpace(input.Difficulty)
	if difficulty == "" {
		difficulty = "medium"
	}

	workspace, err := s.workspaceRepo.GetByIDAndUserID(input.WorkspaceID, input.UserID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	documents, err := s.documentRepo.ListByWorkspaceID(input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	prompt := BuildQuizPrompt(documents, input.Topic, difficulty, count)
	raw, err := s.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseQuizQuestions(raw, count)
}

// ParseQuizQuestions strips any markdown fencing the model added despite
// instructions and validates the fixed schema: exactly `expected` questions,
// four options each, correct index in [0,3].
func ParseQuizQuestions(raw string, expected int) ([]QuizQuestion, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizMalformed, err)
	}
	if len(questions) != expected {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrQuizMalformed, len(questions), expected)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", ErrQuizMalformed, i)
		}
		if len(q.Options) != quizOptionCount {
			return nil, fmt.Errorf("%w: question %d has %d options, want %d", ErrQuizMalformed, i, len(q.Options), quizOptionCount)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= quizOptionCount {
			return nil, fmt.Errorf("%w: question %d correct index %d out of range", ErrQuizMalformed, i, q.CorrectIndex)
		}
	}
	return questions, nil
}

type SubmitResultInput struct {
	UserID         uint
	WorkspaceID    string
	Topic          string
	Score          int
	TotalQuestions int
	Difficulty     string
}

// SubmitResult records the durable residue of one completed quiz session.
func (s *QuizService) SubmitResult(input SubmitResultInput) (*model.QuizResult, error) {
	if input.UserID == 0 || input.TotalQuestions <= 0 {
		return nil, ErrInvalidInput
	}
	if input.Score < 0 || input.Score > input.TotalQuestions {
		return nil, ErrInvalidInput
	}

	result := &model.QuizResult{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		WorkspaceID:    input.WorkspaceID,
		Topic:          input.Topic,
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		Difficulty:     input.Difficulty,
		CompletedAt:    time.Now(),
	}
	if err := s.resultRepo.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *QuizService) ListHistory(userID uint) ([]model.QuizResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.resultRepo.ListByUserID(userID)
}
