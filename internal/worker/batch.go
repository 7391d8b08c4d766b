package worker

import (
	"context"

	"github.com/rkabir/floodlens/internal/model"
)

// Analyzer defines the interface for analyzing one article file.
// Satisfied by pipeline.Analyzer; tests use a stub.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.ArticleResult, error)
}

// AnalyzeJob extracts the structured record for one article file
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute executes the analyze job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}
	return &AnalyzeResult{Path: j.Path, Result: result}
}

// AnalyzeResult represents the outcome of one article analysis.
// A per-article error stays local to its result; it never stops the batch.
type AnalyzeResult struct {
	Path   string
	Result *model.ArticleResult
	Error  error
}

// GetError returns the error from the analyze result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple article files concurrently.
// Articles are independent; the only shared resource is the recognizer
// inside the analyzer, which is read-only after construction.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given article files concurrently. The caller's
// context reaches every job, so a batch deadline cancels in-flight
// recognition. The collector drains results while jobs are still being
// submitted; the corpus can be arbitrarily larger than the worker count.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	collector := NewCollector(pool)

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
	}
	pool.Wait()

	results := collector.Results()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}
