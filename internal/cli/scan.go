package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rkabir/floodlens/internal/model"
	"github.com/rkabir/floodlens/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	scanJSON    string
	scanTimeout time.Duration
	nerBackend  string
	nerModel    string
	noCache     bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <article.txt>",
	Short: "Extract a structured flood report from a single article",
	Long: `Scan processes one UTF-8 text article and prints the extracted record:
disaster type, event date, locations by administrative tier, and
casualty/impact counts.

Example:
  floodlens scan articles/sirajganj-flood.txt
  floodlens scan articles/sirajganj-flood.txt --json report.json
  floodlens scan articles/sirajganj-flood.txt --ner openai`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanJSON, "json", "", "write the structured record to this path")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&nerBackend, "ner", "prose", "NER backend (prose, openai, ollama)")
	scanCmd.Flags().StringVar(&nerModel, "ner-model", "", "model name for remote NER backends")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable recognizer result cache")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", path)
		fmt.Fprintf(os.Stderr, "NER backend: %s\n", cfg.NER.Backend)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	result, err := analyzer.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderer := pipeline.NewRenderer(os.Stdout)
	renderer.RenderBlock(result)

	if scanJSON != "" {
		if err := renderer.RenderJSON(result, scanJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", scanJSON)
		}
	}

	return nil
}

// buildConfig assembles the run configuration: defaults first, then the
// config file and FLOODLENS_* environment values read through viper, then
// explicitly set command flags.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if v := viper.GetString("ner.backend"); v != "" {
		cfg.NER.Backend = v
	}
	if v := viper.GetString("ner.model"); v != "" {
		cfg.NER.Model = v
	}
	if v := viper.GetString("ner.base_url"); v != "" {
		cfg.NER.BaseURL = v
	}
	if v := viper.GetInt("ner.timeout"); v > 0 {
		cfg.NER.Timeout = v
	}
	if v := viper.GetInt("ner.max_tokens"); v > 0 {
		cfg.NER.MaxTokens = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}

	// Explicit flags outrank file and environment values
	if cmd.Flags().Changed("ner") {
		cfg.NER.Backend = nerBackend
	}
	if cmd.Flags().Changed("ner-model") {
		cfg.NER.Model = nerModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose

	switch cfg.NER.Backend {
	case "openai":
		cfg.NER.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.NER.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.NER.BaseURL = baseURL
		}
	}

	return cfg, nil
}
