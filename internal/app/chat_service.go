package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docfolio/internal/ai"
	"docfolio/internal/model"
)

var (
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrMessageEnqueue  = errors.New("message enqueue failed")
	ErrMessageNotFound = errors.New("message not found")
)

// LLMClient is the chat/quiz surface of the model backend.
type LLMClient interface {
	Chat(ctx context.Context, systemInstruction string, turns []ai.ChatTurn) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// AsyncMessagePublisher hands a message to the persistence queue.
type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

// HistoryCache is the Redis-backed conversation cache.
type HistoryCache interface {
	GetHistory(ctx context.Context, workspaceID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, workspaceID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, workspaceID string) error
	MarkDirty(ctx context.Context, workspaceID string) error
	IsDirty(ctx context.Context, workspaceID string) (bool, error)
}

type ChatService struct {
	workspaceRepo WorkspaceStore
	documentRepo  DocumentStore
	messageRepo   MessageStore
	publisher     AsyncMessagePublisher
	historyCache  HistoryCache
	llm           LLMClient
	maxContext    int
}

func NewChatService(
	workspaceRepo WorkspaceStore,
	documentRepo DocumentStore,
	messageRepo MessageStore,
	publisher AsyncMessagePublisher,
	historyCache HistoryCache,
	llm LLMClient,
	maxContext int,
) *ChatService {
	if maxContext <= 0 {
		maxContext = 50
	}
	return &ChatService{
		workspaceRepo: workspaceRepo,
		documentRepo:  documentRepo,
		messageRepo:   messageRepo,
		publisher:     publisher,
		historyCache:  historyCache,
		llm:           llm,
		maxContext:    maxContext,
	}
}

type SendMessageInput struct {
	UserID      uint
	WorkspaceID string
	Content     string
	ReplyToID   string
}

type SendMessageResult struct {
	UserMessage      model.Message `json:"user_message"`
	AssistantMessage model.Message `json:"assistant_message"`
}

// SendMessage appends the user's utterance, assembles the document-grounded
// request and appends the model's reply. The user message is enqueued before
// the model call, so a failed call still leaves it in history; the failure
// itself becomes an error-flagged assistant message rather than a dropped
// conversation entry.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageResult, error) {
	if input.UserID == 0 || input.WorkspaceID == "" {
		return nil, ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMessageEmpty
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
	history, err := s.messageRepo.ListRecentByWorkspaceID(input.WorkspaceID, s.maxContext)
	if err != nil {
		return nil, err
	}

	userMessage := model.Message{
		ID:          uuid.NewString(),
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		Role:        model.RoleUser,
		Content:     content,
		ReplyToID:   input.ReplyToID,
		CreatedAt:   time.Now(),
	}
	if s.publisher == nil {
		return nil, ErrMessageEnqueue
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, input.WorkspaceID)
		_ = s.historyCache.DeleteHistory(ctx, input.WorkspaceID)
	}
	if err := s.publisher.Publish(ctx, userMessage); err != nil {
		return nil, ErrMessageEnqueue
	}

	systemInstruction := BuildSystemInstruction(documents)
	turns := BuildChatTurns(history, content)

	assistantMessage := model.Message{
		ID:          uuid.NewString(),
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		Role:        model.RoleAssistant,
		CreatedAt:   time.Now(),
	}
	answer, err := s.llm.Chat(ctx, systemInstruction, turns)
	if err != nil {
		assistantMessage.IsError = true
		assistantMessage.Content = "Model request failed: " + err.Error()
	} else {
		assistantMessage.Content = answer
	}

	if err := s.publisher.Publish(ctx, assistantMessage); err != nil {
		return nil, ErrMessageEnqueue
	}

	return &SendMessageResult{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	}, nil
}

func (s *ChatService) GetHistory(userID uint, workspaceID string, limit int) ([]model.Message, error) {
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
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	ctx := context.Background()
	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, workspaceID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, workspaceID); cacheErr == nil && hit {
				return trimMessages(cached, limit), nil
			}
		}
	}

	// The recent window, like the cache-hit path, so both agree on which end
	// of a long conversation is returned.
	messages, err := s.messageRepo.ListRecentByWorkspaceID(workspaceID, limit)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, workspaceID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, workspaceID, messages)
		}
	}
	return messages, nil
}

// ClearMessages removes the whole conversation of a workspace. This is the
// only bulk message deletion; individual entries are never removed.
func (s *ChatService) ClearMessages(userID uint, workspaceID string) error {
	if userID == 0 || workspaceID == "" {
		return ErrInvalidInput
	}
	workspace, err := s.workspaceRepo.GetByIDAndUserID(workspaceID, userID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrWorkspaceNotFound
	}
	if err := s.messageRepo.DeleteByWorkspaceID(workspaceID); err != nil {
		return err
	}
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(context.Background(), workspaceID)
	}
	return nil
}

// ToggleReaction adds the emoji to the message if the owner has not reacted
// with it yet, otherwise removes it. Counts never go below zero.
func (s *ChatService) ToggleReaction(userID uint, messageID, emoji string) (*model.Message, error) {
	if emoji == "" {
		return nil, ErrInvalidInput
	}
	message, err := s.ownedMessage(userID, messageID)
	if err != nil {
		return nil, err
	}

	counts := message.ReactionCounts()
	owned := message.OwnerReactions()

	reacted := false
	for i, e := range owned {
		if e == emoji {
			owned = append(owned[:i], owned[i+1:]...)
			reacted = true
			break
		}
	}
	if reacted {
		if counts[emoji] > 1 {
			counts[emoji]--
		} else {
			delete(counts, emoji)
		}
	} else {
		owned = append(owned, emoji)
		counts[emoji]++
	}

	message.SetReactionCounts(counts)
	message.SetOwnerReactions(owned)
	if err := s.messageRepo.Update(message); err != nil {
		return nil, err
	}
	s.invalidateHistory(message.WorkspaceID)
	return message, nil
}

func (s *ChatService) SetPinned(userID uint, messageID string, pinned bool) (*model.Message, error) {
	message, err := s.ownedMessage(userID, messageID)
	if err != nil {
		return nil, err
	}
	message.Pinned = pinned
	if err := s.messageRepo.Update(message); err != nil {
		return nil, err
	}
	s.invalidateHistory(message.WorkspaceID)
	return message, nil
}

func (s *ChatService) SetFavorited(userID uint, messageID string, favorited bool) (*model.Message, error) {
	message, err := s.ownedMessage(userID, messageID)
	if err != nil {
		return nil, err
	}
	message.Favorited = favorited
	if err := s.messageRepo.Update(message); err != nil {
		return nil, err
	}
	s.invalidateHistory(message.WorkspaceID)
	return message, nil
}

func (s *ChatService) ownedMessage(userID uint, messageID string) (*model.Message, error) {
	if userID == 0 || messageID == "" {
		return nil, ErrInvalidInput
	}
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	workspace, err := s.workspaceRepo.GetByIDAndUserID(message.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

func (s *ChatService) invalidateHistory(workspaceID string) {
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(context.Background(), workspaceID)
	}
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
