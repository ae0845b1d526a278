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

// OpenAI talks to the chat completions API, or any compatible server
// reachable through BaseURL.
type OpenAI struct {
	client   *http.Client
	apiKey   string
	model    string
	endpoint string
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIChatMessage `json:"message"`
	} `json:"choices"`
}

func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	} else {
		endpoint = strings.TrimRight(endpoint, "/")
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			if strings.HasSuffix(endpoint, "/v1") {
				endpoint += "/chat/completions"
			} else {
				endpoint += "/v1/chat/completions"
			}
		}
	}
	return &OpenAI{
		client:   &http.Client{},
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

func (s *OpenAI) ModelName() string {
	return fmt.Sprintf("OpenAI (%s)", s.model)
}

func (s *OpenAI) Summarize(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return "", &ProviderError{Provider: "openai", Err: fmt.Errorf("api key is required")}
	}
	if strings.TrimSpace(s.model) == "" {
		return "", &ProviderError{Provider: "openai", Err: fmt.Errorf("model is required")}
	}

	body, err := json.Marshal(openAIChatRequest{
		Model: s.model,
		Messages: []openAIChatMessage{
			{Role: "system", Content: "You are a helpful assistant that summarizes functions in one line."},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", transportError("openai", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("openai", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError("openai", resp.StatusCode, string(raw))
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return cleanOutput(parsed.Choices[0].Message.Content), nil
}
