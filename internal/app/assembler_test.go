package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfolio/internal/model"
)

func TestBuildDocumentBlockEmpty(t *testing.T) {
	assert.Equal(t, NoDocumentsNotice, BuildDocumentBlock(nil))
	assert.Equal(t, NoDocumentsNotice, BuildDocumentBlock([]model.Document{}))
}

func TestBuildDocumentBlockFramesEachDocument(t *testing.T) {
	docs := []model.Document{
		{Name: "cities.txt", Content: "The capital of France is Paris."},
		{Name: "rivers.txt", Content: "The Seine flows through Paris."},
	}

	block := BuildDocumentBlock(docs)

	assert.Contains(t, block, "--- DOCUMENT: cities.txt ---\nThe capital of France is Paris.\n--- END DOCUMENT ---")
	assert.Contains(t, block, "--- DOCUMENT: rivers.txt ---\nThe Seine flows through Paris.\n--- END DOCUMENT ---")
	assert.Less(t, strings.Index(block, "cities.txt"), strings.Index(block, "rivers.txt"),
		"documents must keep workspace order")
	assert.NotContains(t, block, NoDocumentsNotice)
}

func TestBuildSystemInstructionCarriesRefusalAndContext(t *testing.T) {
	docs := []model.Document{{Name: "cities.txt", Content: "The capital of France is Paris."}}

	instruction := BuildSystemInstruction(docs)

	assert.Contains(t, instruction, RefusalSentence)
	assert.Contains(t, instruction, "DOCUMENT CONTEXT:")
	assert.Contains(t, instruction, "--- DOCUMENT: cities.txt ---")
	assert.Contains(t, instruction, "The capital of France is Paris.")
}

func TestBuildSystemInstructionWithoutDocuments(t *testing.T) {
	instruction := BuildSystemInstruction(nil)
	assert.Contains(t, instruction, NoDocumentsNotice)
	assert.NotContains(t, instruction, "--- DOCUMENT:")
}

func TestBuildChatTurnsAppendsUserLast(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "What is the capital of France?"},
		{Role: model.RoleAssistant, Content: "Paris."},
	}

	turns := BuildChatTurns(history, "And its river?")

	require.Len(t, turns, 3)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "What is the capital of France?", turns[0].Text)
	assert.Equal(t, model.RoleAssistant, turns[1].Role)
	assert.Equal(t, model.RoleUser, turns[2].Role)
	assert.Equal(t, "And its river?", turns[2].Text)
}

func TestBuildChatTurnsDefaultsMissingRole(t *testing.T) {
	turns := BuildChatTurns([]model.Message{{Content: "orphan"}}, "question")
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
}

func TestBuildQuizPromptDefaultsTopic(t *testing.T) {
	docs := []model.Document{{Name: "doc.txt", Content: "content"}}

	prompt := BuildQuizPrompt(docs, "", "medium", 5)

	assert.Contains(t, prompt, "Topic: General, across the documents")
	assert.Contains(t, prompt, "Difficulty: medium")
	assert.Contains(t, prompt, "Number of questions: 5")
	assert.Contains(t, prompt, "correctIndex")
	assert.Contains(t, prompt, "--- DOCUMENT: doc.txt ---")
}

func TestBuildQuizPromptKeepsExplicitTopic(t *testing.T) {
	prompt := BuildQuizPrompt([]model.Document{{Name: "d", Content: "c"}}, "French geography", "hard", 10)
	assert.Contains(t, prompt, "Topic: French geography")
	assert.Contains(t, prompt, "Difficulty: hard")
	assert.Contains(t, prompt, "Number of questions: 10")
}
