// Package assistant relays career-advisor chat to the language-model
// provider and keeps the conversation transcript.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultModel     = "gpt-4o-mini"
	completionTokens = 1000
	temperature      = 0.7
)

// ProviderError reports a misconfigured or unreachable upstream model.
// Callers substitute a user-visible apology and never retry automatically.
type ProviderError struct{ Err error }

func (e *ProviderError) Error() string { return fmt.Sprintf("assistant provider: %v", e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// Message is one transcript turn sent to the provider.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Relay is a stateless chat-completion proxy. With no API key configured it
// stays constructable and fails each Complete call with a ProviderError, so
// the rest of the service runs without the assistant.
type Relay struct {
	client     openai.Client
	model      string
	configured bool
}

// NewRelay builds a Relay for the given credentials. model falls back to the
// service default when empty.
func NewRelay(apiKey, model string) *Relay {
	if model == "" {
		model = defaultModel
	}
	r := &Relay{model: model, configured: apiKey != ""}
	if r.configured {
		r.client = openai.NewClient(option.WithAPIKey(apiKey))
	}
	return r
}

// Complete sends the transcript plus the notes context to the provider and
// returns the reply text.
func (r *Relay) Complete(ctx context.Context, transcript []Message, notesContext string) (string, error) {
	if !r.configured {
		return "", &ProviderError{Err: errors.New("OPENAI_API_KEY is not set")}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt(notesContext)))
	for _, m := range transcript {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(m.Content))
	}

	completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(r.model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(completionTokens),
	})
	if err != nil {
		return "", &ProviderError{Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &ProviderError{Err: errors.New("empty completion")}
	}

	return completion.Choices[0].Message.Content, nil
}
