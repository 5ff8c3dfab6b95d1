package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
)

// OpenAIProvider calls the chat/completions endpoint directly. The
// base_url option points it at any OpenAI-compatible service.
type OpenAIProvider struct{}

var _ Provider = (*OpenAIProvider)(nil)

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", generationErr("openai", "OPENAI_API_KEY_MISSING: Please set OPENAI_API_KEY env var")
	}

	model := "gpt-4o"
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	temperature := 0.7
	if val, ok := options["temperature"].(float64); ok {
		temperature = val
	}

	baseURL := "https://api.openai.com/v1"
	if val, ok := options["base_url"].(string); ok && val != "" {
		baseURL = val
	}
	url := baseURL + "/chat/completions"

	var messages []Message
	if systemPrompt != "" {
		messages = append(messages, Message{Content: systemPrompt, Role: "system"})
	}
	messages = append(messages, Message{Content: prompt, Role: "user"})

	reqBody := openAIRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		Stream:      false,
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", generationErr("openai", "OPENAI_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", generationErr("openai", "OPENAI_REQ_CREATE_ERROR: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", generationErr("openai", "OPENAI_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", generationErr("openai", "OPENAI_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != 200 {
		return "", generationErr("openai", "OPENAI_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", generationErr("openai", "OPENAI_UNMARSHAL_ERROR: %v", err)
	}
	if response.Error != nil {
		return "", generationErr("openai", "OPENAI_API_ERROR: %s (%s)", response.Error.Message, response.Error.Type)
	}
	if len(response.Choices) == 0 {
		return "", generationErr("openai", "OPENAI_NO_CHOICES: %s", string(body))
	}

	return response.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return raw
}
