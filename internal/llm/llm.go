// Package llm generates one-line function descriptions through a pluggable
// provider (Ollama, OpenAI or Gemini) and attaches them to extracted
// function entries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request carries everything a provider needs to describe one function.
type Request struct {
	Language  string
	Name      string
	Signature string
	Body      string
	BodyHash  string
}

// LLM is the provider-facing interface. Summarize returns a one-line
// description of the function in the request.
type LLM interface {
	Summarize(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewLLM constructs the provider named in opts. Provider defaults to ollama.
func NewLLM(ctx context.Context, opts Options) (LLM, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		return NewOllama(opts.Model, opts.BaseURL), nil
	case "openai":
		return NewOpenAI(opts.APIKey, opts.Model, opts.BaseURL), nil
	case "gemini":
		return NewGemini(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", opts.Provider)
	}
}

// ProviderError classifies a failed provider call. Transient failures
// (rate limits, server errors, network faults, deadlines) are worth
// retrying; permanent ones (bad credentials, malformed requests) are not.
type ProviderError struct {
	Provider   string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed (%d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying. Errors that are not
// ProviderErrors (network faults, timeouts) count as transient.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return true
}

// statusError builds a ProviderError from an HTTP status. 429 and 5xx are
// transient; every other non-2xx status is permanent.
func statusError(provider string, status int, body string) *ProviderError {
	transient := status == 429 || status >= 500
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Transient:  transient,
		Err:        errors.New(strings.TrimSpace(body)),
	}
}

func transportError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Transient: true, Err: err}
}

func buildPrompt(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize this %s function in one line.\n\n", req.Language)
	fmt.Fprintf(&sb, "Name: %s\n", req.Name)
	if req.Signature != "" {
		fmt.Fprintf(&sb, "Signature: %s\n", req.Signature)
	}
	sb.WriteString("\n")
	sb.WriteString(req.Body)
	return sb.String()
}

// cleanOutput collapses a provider response to a single trimmed line and
// strips any markdown fencing the model wrapped it in.
func cleanOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	return text
}
