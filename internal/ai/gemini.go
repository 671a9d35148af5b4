// Package ai wraps the Gemini API for chat completion, quiz generation and
// image OCR. Credentials stay server-side; handlers never see the key.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"docfolio/internal/config"
)

const (
	// Low temperature favors faithfulness to the supplied documents.
	chatTemperature = 0.3
	// Quiz generation tolerates slightly more variety.
	quizTemperature = 0.5

	ocrInstruction = "Transcribe the text from this image exactly as it appears. " +
		"If there is handwritten text, try to read it. Output ONLY the text content. " +
		"If the image contains tables, format them with markdown."
)

// ChatTurn is one prior conversation entry sent to the model.
type ChatTurn struct {
	Role string // model.RoleUser or model.RoleAssistant
	Text string
}

type Client struct {
	genai     *genai.Client
	chatModel string
	ocrModel  string
}

func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}
	return &Client{
		genai:     client,
		chatModel: cfg.ChatModel,
		ocrModel:  cfg.OCRModel,
	}, nil
}

func (c *Client) Close() error {
	if c.genai == nil {
		return nil
	}
	return c.genai.Close()
}

// Chat replays the turns as a chat session and sends the final user turn.
// The system instruction carries the document corpus.
func (c *Client) Chat(ctx context.Context, systemInstruction string, turns []ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("empty turn list for chat completion")
	}
	last := turns[len(turns)-1]
	if geminiRole(last.Role) != "user" {
		return "", fmt.Errorf("last chat turn must come from the user")
	}

	model := c.genai.GenerativeModel(c.chatModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.SetTemperature(chatTemperature)

	session := model.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		session.History = append(session.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return "", fmt.Errorf("gemini chat request failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

// GenerateJSON issues a single-turn prompt with a JSON response hint.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.genai.GenerativeModel(c.chatModel)
	model.SetTemperature(quizTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation request failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

// TranscribeImage runs vision OCR over the inline image payload.
func (c *Client) TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	model := c.genai.GenerativeModel(c.ocrModel)

	format := strings.TrimPrefix(mimeType, "image/")
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, data),
		genai.Text(ocrInstruction),
	)
	if err != nil {
		return "", fmt.Errorf("gemini ocr request failed: %w", err)
	}
	return responseText(resp), nil
}

func geminiRole(role string) string {
	if role == "assistant" || role == "model" {
		return "model"
	}
	return "user"
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(out.String())
}
