package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/rkabir/floodlens/internal/pipeline"
	"github.com/rkabir/floodlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	jsonDir      string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract structured flood reports from a directory of articles",
	Long: `Batch processes every *.txt article in a directory:
- Non-recursive; files with other extensions are ignored
- Articles are analyzed in parallel with configurable worker count
- A failing article is logged and skipped, the rest still process
- The recognizer model is loaded once and shared across workers

Example:
  floodlens batch data/raw_articles
  floodlens batch data/raw_articles --concurrency 8 --json-dir ./reports
  floodlens batch data/raw_articles --ner ollama --ner-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&jsonDir, "json-dir", "", "also write one JSON record per article into this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&nerBackend, "ner", "prose", "NER backend (prose, openai, ollama)")
	batchCmd.Flags().StringVar(&nerModel, "ner-model", "", "model name for remote NER backends")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable recognizer result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	cfg.Output.JSONDir = jsonDir
	workers := cfg.Concurrency.Workers

	paths, err := pipeline.ListArticles(dir)
	if err != nil {
		var noArticles *pipeline.ErrNoArticles
		if errors.As(err, &noArticles) {
			// Operator problem, not a processing failure: report and
			// finish the run cleanly.
			fmt.Fprintf(os.Stderr, "Error: %v\n", noArticles)
			return nil
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "Found %d article(s) to process...\n", len(paths))
	if verbose {
		fmt.Fprintf(os.Stderr, "Workers: %d, NER backend: %s\n", workers, cfg.NER.Backend)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	if jsonDir != "" {
		if err := os.MkdirAll(jsonDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	processor := worker.NewBatchProcessor(analyzer, workers)
	results := processor.ProcessFiles(ctx, paths)

	// Pool output is completion-ordered; sort for a stable report
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	renderer := pipeline.NewRenderer(os.Stdout)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", filepath.Base(result.Path), result.Error)
			continue
		}
		successCount++

		renderer.RenderBlock(result.Result)

		if jsonDir != "" {
			name := strings.TrimSuffix(result.Result.Article, ".txt") + ".json"
			if err := renderer.RenderJSON(result.Result, filepath.Join(jsonDir, name)); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing JSON for %s: %v\n", result.Result.Article, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d article(s): %d ok, %d failed\n", len(results), successCount, failureCount)

	return nil
}
