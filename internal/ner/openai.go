package ner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIRecognizer runs entity recognition through OpenAI's Chat
// Completions API. Useful when the local model misses regional place names.
type OpenAIRecognizer struct {
	client *openai.Client
	config Config
}

// NewOpenAIRecognizer creates a new OpenAI-backed recognizer
func NewOpenAIRecognizer(config Config) (*OpenAIRecognizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIRecognizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the backend name
func (r *OpenAIRecognizer) Name() string {
	return "openai"
}

// Recognize extracts entity spans from text
func (r *OpenAIRecognizer) Recognize(ctx context.Context, text string) (*Document, error) {
	if len(text) > maxInputBytes {
		return nil, ErrInputTooLarge
	}

	model := r.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := r.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	timeout := time.Duration(r.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a named-entity recognizer. You return only JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildNERPrompt(text),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0, // Extraction must be deterministic
	}

	resp, err := r.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	entities, err := parseWireEntities(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err != nil {
		return nil, fmt.Errorf("parse OpenAI response: %w", err)
	}

	return documentFromWire(text, entities), nil
}
