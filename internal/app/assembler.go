package app

import (
	"fmt"
	"strings"

	"docfolio/internal/ai"
	"docfolio/internal/model"
)

// NoDocumentsNotice replaces the document block when a workspace has no
// documents, so the model never receives an ambiguous empty context.
const NoDocumentsNotice = "No documents have been uploaded."

// RefusalSentence is the fixed reply the model is instructed to give when the
// answer is not present in the documents.
const RefusalSentence = "Unfortunately, the provided documents do not contain the information needed to answer this question."

// BuildDocumentBlock renders every document of the workspace, in workspace
// order, framed by DOCUMENT markers.
func BuildDocumentBlock(docs []model.Document) string {
	if len(docs) == 0 {
		return NoDocumentsNotice
	}
	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("--- DOCUMENT: %s ---\n%s\n--- END DOCUMENT ---\n", doc.Name, doc.Content)
	}
	return strings.Join(blocks, "\n")
}

// BuildSystemInstruction produces the grounding rules plus the full document
// corpus for a chat request.
func BuildSystemInstruction(docs []model.Document) string {
	return fmt.Sprintf(`You are a retrieval-augmented assistant for a document workspace.
Your task is to answer the user's questions based EXCLUSIVELY on the documents provided below.

RULES:
1. Use ONLY information from the DOCUMENT CONTEXT section.
2. If the answer is not contained in the documents, reply exactly: "%s"
3. Do not invent facts. Do not use outside knowledge unless the documents confirm it.
4. Answer in the user's language.
5. When quoting, cite the document name where appropriate.

DOCUMENT CONTEXT:
%s`, RefusalSentence, BuildDocumentBlock(docs))
}

// BuildChatTurns replays the conversation in chronological order and appends
// the new user utterance last.
func BuildChatTurns(history []model.Message, userInput string) []ai.ChatTurn {
	turns := make([]ai.ChatTurn, 0, len(history)+1)
	for _, msg := range history {
		role := msg.Role
		if role == "" {
			role = model.RoleUser
		}
		turns = append(turns, ai.ChatTurn{Role: role, Text: msg.Content})
	}
	turns = append(turns, ai.ChatTurn{Role: model.RoleUser, Text: userInput})
	return turns
}

// BuildQuizPrompt embeds the document corpus in a single-turn instruction
// requesting a fixed-schema JSON array.
func BuildQuizPrompt(docs []model.Document, topic, difficulty string, count int) string {
	if strings.TrimSpace(topic) == "" {
		topic = "General, across the documents"
	}
	return fmt.Sprintf("Create a quiz based on the provided documents.\n"+
		"Topic: %s\n"+
		"Difficulty: %s\n"+
		"Number of questions: %d\n\n"+
		"Format requirements:\n"+
		"Return ONLY a valid JSON array of objects. No markdown formatting (no ```json).\n"+
		"Each object must have the structure:\n"+
		"{\n"+
		"  \"question\": \"Question text\",\n"+
		"  \"options\": [\"Option A\", \"Option B\", \"Option C\", \"Option D\"],\n"+
		"  \"correctIndex\": 0\n"+
		"}\n\n"+
		"DOCUMENT CONTEXT:\n%s", topic, difficulty, count, BuildDocumentBlock(docs))
}
