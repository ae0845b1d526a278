package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Ollama talks to a local Ollama server through its non-streaming
// generate endpoint.
type Ollama struct {
	client   *http.Client
	model    string
	endpoint string
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func NewOllama(model, baseURL string) *Ollama {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = "http://127.0.0.1:11434"
	}
	url = strings.TrimRight(url, "/")
	if !strings.HasSuffix(url, "/api/generate") {
		url += "/api/generate"
	}

	return &Ollama{
		client:   &http.Client{},
		model:    model,
		endpoint: url,
	}
}

func (o *Ollama) ModelName() string {
	return fmt.Sprintf("Ollama (%s)", o.model)
}

func (o *Ollama) Summarize(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(o.model) == "" {
		return "", &ProviderError{Provider: "ollama", Err: fmt.Errorf("model is required")}
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: buildPrompt(req),
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", transportError("ollama", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("ollama", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError("ollama", resp.StatusCode, string(raw))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return cleanOutput(parsed.Response), nil
}
