package ner

import (
	"fmt"
	"strings"
)

// NewRecognizer creates a recognizer backend based on configuration
func NewRecognizer(config Config) (Recognizer, error) {
	backend := strings.ToLower(config.Backend)

	switch backend {
	case "prose", "":
		// Local statistical model, the default
		return NewProseRecognizer(), nil

	case "openai":
		return NewOpenAIRecognizer(config)

	case "ollama":
		return NewOllamaRecognizer(config)

	default:
		return nil, fmt.Errorf("unknown NER backend: %s (supported: prose, openai, ollama)", config.Backend)
	}
}
