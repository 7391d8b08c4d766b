package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rkabir/floodlens/internal/model"
)

// maxInputBytes bounds the text a recognizer will process.
// Articles are small; anything beyond this is not a news article.
const maxInputBytes = 1 << 20 // 1 MiB

// ErrInputTooLarge is returned when the article exceeds maxInputBytes
var ErrInputTooLarge = fmt.Errorf("input exceeds %d bytes", maxInputBytes)

// Recognizer is the black-box entity-recognition capability: given text,
// it returns a token-addressable document with labeled entity spans.
// Implementations must be safe for concurrent use; the pipeline shares one
// recognizer across all workers.
type Recognizer interface {
	// Name returns the backend name
	Name() string

	// Recognize extracts entity spans from text
	Recognize(ctx context.Context, text string) (*Document, error)
}

// Config holds recognizer backend configuration
type Config struct {
	// Backend name: "prose", "openai", "ollama"
	Backend string

	// Model name (remote backends only)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens caps LLM response length
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Backend:   "prose",
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts model.NERConfig to ner.Config
func ConfigFromModel(mc model.NERConfig) Config {
	return Config{
		Backend:   mc.Backend,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// wireEntity is the JSON shape LLM backends are prompted to return
type wireEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// buildNERPrompt constructs the extraction prompt for LLM backends
func buildNERPrompt(text string) string {
	return fmt.Sprintf(`Extract named entities from the news article below.

RULES:
1. Return ONLY a JSON array, no prose, no code fences.
2. Each element: {"text": "<exact surface string from the article>", "label": "<GPE|DATE>"}
3. Label place names (countries, districts, towns, regions) as GPE.
4. Label date mentions (e.g. "August 21", "last week", "2024") as DATE.
5. "text" must be copied verbatim from the article, character for character.

Article:
%s`, text)
}

// parseWireEntities parses the LLM response into entities, tolerating
// code fences and surrounding prose around the JSON array.
func parseWireEntities(response string) ([]wireEntity, error) {
	s := strings.TrimSpace(response)

	// Cut to the outermost JSON array
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}
	s = s[start : end+1]

	var entities []wireEntity
	if err := json.Unmarshal([]byte(s), &entities); err != nil {
		return nil, fmt.Errorf("unmarshal entities: %w", err)
	}
	return entities, nil
}

// documentFromWire builds a Document by aligning wire entities against the
// package tokenizer. Entities that cannot be located in the text are dropped.
func documentFromWire(text string, entities []wireEntity) *Document {
	tokens := Tokenize(text)
	doc := &Document{Tokens: tokens}

	for _, e := range entities {
		label := strings.ToUpper(strings.TrimSpace(e.Label))
		if label != LabelPlace && label != LabelDate {
			continue
		}
		start, end, ok := alignSpan(tokens, e.Text)
		if !ok {
			continue
		}
		doc.Spans = append(doc.Spans, Span{
			Text:  e.Text,
			Label: label,
			Start: start,
			End:   end,
		})
	}

	return doc
}
