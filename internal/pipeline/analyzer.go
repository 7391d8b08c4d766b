package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rkabir/floodlens/internal/cache"
	"github.com/rkabir/floodlens/internal/extract"
	"github.com/rkabir/floodlens/internal/model"
	"github.com/rkabir/floodlens/internal/ner"
)

// Analyzer orchestrates the extraction of one structured record per article
type Analyzer struct {
	recognizer  ner.Recognizer
	classifier  *extract.DisasterClassifier
	numbers     *extract.NumericExtractor
	regexLoc    *extract.RegexLocationExtractor
	categorizer *extract.ContextCategorizer
	dates       *extract.EventDateResolver
	config      *model.Config
}

// NewAnalyzer creates a new analyzer with the given configuration.
// The recognizer backend is constructed once and shared read-only across
// all workers; when caching is enabled recognition results are reused
// across runs through the layered cache.
func NewAnalyzer(cfg *model.Config) (*Analyzer, error) {
	recognizer, err := ner.NewRecognizer(ner.ConfigFromModel(cfg.NER))
	if err != nil {
		return nil, fmt.Errorf("create recognizer: %w", err)
	}

	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(30*time.Minute, cfg.Cache.Dir, cfg.Cache.TTL)
		recognizer = ner.NewCachedRecognizer(recognizer, layered, cfg.Cache.TTL)
	}

	return NewAnalyzerWithRecognizer(cfg, recognizer), nil
}

// NewAnalyzerWithRecognizer creates an analyzer around an existing
// recognizer. Tests inject a stub recognizer through this constructor.
func NewAnalyzerWithRecognizer(cfg *model.Config, recognizer ner.Recognizer) *Analyzer {
	return &Analyzer{
		recognizer:  recognizer,
		classifier:  extract.NewDisasterClassifier(),
		numbers:     extract.NewNumericExtractor(),
		regexLoc:    extract.NewRegexLocationExtractor(),
		categorizer: extract.NewContextCategorizer(),
		dates:       extract.NewEventDateResolver(),
		config:      cfg,
	}
}

// Recognizer returns the shared recognizer backend
func (a *Analyzer) Recognizer() ner.Recognizer {
	return a.recognizer
}

// Analyze extracts the structured record for one article. The result is a
// pure function of the text and the recognizer's output: analyzing the same
// text twice yields the same record.
func (a *Analyzer) Analyze(ctx context.Context, text, name string) (*model.ArticleResult, error) {
	doc, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("recognize entities: %w", err)
	}

	// Both location sources run independently on the same text,
	// then merge into one record.
	contextual := a.categorizer.Categorize(doc)
	regex := a.regexLoc.Extract(text)
	locations := extract.MergeLocations(contextual, regex)

	return &model.ArticleResult{
		Article:      name,
		DisasterType: a.classifier.Classify(text),
		EventDate:    a.dates.Resolve(doc.Dates(), text),
		Locations:    locations,
		Casualties:   a.numbers.Extract(text),
	}, nil
}

// AnalyzeFile reads one article file and extracts its structured record
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.ArticleResult, error) {
	text, name, err := ReadArticle(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, text, name)
}
