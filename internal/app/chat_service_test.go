package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfolio/internal/model"
)

func chatFixture(llm LLMClient) (*ChatService, *fakeMessageStore, *fakePublisher) {
	workspaces := &fakeWorkspaceStore{workspaces: []model.Workspace{
		{ID: "ws-1", UserID: 1, Name: "Research"},
	}}
	documents := &fakeDocumentStore{documents: []model.Document{
		{ID: "doc-1", WorkspaceID: "ws-1", Name: "cities.txt", Content: "The capital of France is Paris."},
	}}
	messages := &fakeMessageStore{}
	publisher := &fakePublisher{}
	service := NewChatService(workspaces, documents, messages, publisher, nil, llm, 50)
	return service, messages, publisher
}

func TestSendMessageSuccess(t *testing.T) {
	service, _, publisher := chatFixture(&fakeLLM{answer: "Paris."})

	result, err := service.SendMessage(context.Background(), SendMessageInput{
		UserID:      1,
		WorkspaceID: "ws-1",
		Content:     "What is the capital of France?",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, result.UserMessage.Role)
	assert.Equal(t, model.RoleAssistant, result.AssistantMessage.Role)
	assert.Equal(t, "Paris.", result.AssistantMessage.Content)
	assert.False(t, result.AssistantMessage.IsError)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, result.UserMessage.ID, publisher.published[0].ID)
	assert.Equal(t, result.AssistantMessage.ID, publisher.published[1].ID)
}

func TestSendMessageModelFailureStillRecordsBoth(t *testing.T) {
	service, _, publisher := chatFixture(&fakeLLM{err: errors.New("deadline exceeded")})

	result, err := service.SendMessage(context.Background(), SendMessageInput{
		UserID:      1,
		WorkspaceID: "ws-1",
		Content:     "What is the capital of France?",
	})
	require.NoError(t, err, "a model failure must not fail the request")

	require.Len(t, publisher.published, 2)
	assert.Equal(t, model.RoleUser, publisher.published[0].Role,
		"the user message is recorded before the model outcome is known")
	assert.Equal(t, "What is the capital of France?", publisher.published[0].Content)

	assistant := publisher.published[1]
	assert.Equal(t, model.RoleAssistant, assistant.Role)
	assert.True(t, assistant.IsError)
	assert.Equal(t, "Model request failed: deadline exceeded", assistant.Content)
	assert.Equal(t, assistant, result.AssistantMessage)
}

func TestSendMessageUnknownWorkspace(t *testing.T) {
	service, _, publisher := chatFixture(&fakeLLM{answer: "Paris."})

	_, err := service.SendMessage(context.Background(), SendMessageInput{
		UserID:      1,
		WorkspaceID: "other",
		Content:     "hello",
	})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.Empty(t, publisher.published)
}

func TestGetHistoryReturnsNewestWindow(t *testing.T) {
	service, messages, _ := chatFixture(&fakeLLM{})
	for i := 0; i < 30; i++ {
		messages.messages = append(messages.messages, model.Message{
			ID:          fmt.Sprintf("msg-%d", i),
			WorkspaceID: "ws-1",
			Content:     fmt.Sprintf("entry %d", i),
		})
	}

	history, err := service.GetHistory(1, "ws-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 10)
	assert.Equal(t, "entry 20", history[0].Content)
	assert.Equal(t, "entry 29", history[9].Content)
}

func TestTrimMessagesKeepsTail(t *testing.T) {
	messages := []model.Message{
		{Content: "one"},
		{Content: "two"},
		{Content: "three"},
	}

	trimmed := trimMessages(messages, 2)
	assert.Len(t, trimmed, 2)
	assert.Equal(t, "two", trimmed[0].Content)
	assert.Equal(t, "three", trimmed[1].Content)
}

func TestTrimMessagesNoLimit(t *testing.T) {
	messages := []model.Message{{Content: "one"}, {Content: "two"}}

	assert.Equal(t, messages, trimMessages(messages, 0))
	assert.Equal(t, messages, trimMessages(messages, -1))
	assert.Equal(t, messages, trimMessages(messages, 5))
}
