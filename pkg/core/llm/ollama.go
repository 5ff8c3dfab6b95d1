package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
)

// OllamaProvider talks to a local Ollama daemon. No API key involved;
// the host comes from OLLAMA_HOST or the base_url option.
type OllamaProvider struct{}

var _ Provider = (*OllamaProvider)(nil)

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (p *OllamaProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}
	if val, ok := options["base_url"].(string); ok && val != "" {
		host = val
	}

	model := "mistral"
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	reqBody := ollamaRequest{
		Model:  model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", generationErr("ollama", "OLLAMA_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", host+"/api/generate", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", generationErr("ollama", "OLLAMA_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", generationErr("ollama", "OLLAMA_UNREACHABLE: %v (is the daemon running?)", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", generationErr("ollama", "OLLAMA_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != 200 {
		return "", generationErr("ollama", "OLLAMA_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response ollamaResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", generationErr("ollama", "OLLAMA_UNMARSHAL_ERROR: %v", err)
	}
	if response.Error != "" {
		return "", generationErr("ollama", "OLLAMA_API_ERROR: %s", response.Error)
	}

	return response.Response, nil
}

func (p *OllamaProvider) AdaptInstructions(raw string) string {
	return raw
}
