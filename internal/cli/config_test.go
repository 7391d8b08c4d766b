package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// testCommand mirrors the NER flags the scan and batch commands register
func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&nerBackend, "ner", "prose", "")
	cmd.Flags().StringVar(&nerModel, "ner-model", "", "")
	return cmd
}

func TestBuildConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := buildConfig(testCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NER.Backend != "prose" {
		t.Errorf("backend = %q, want prose", cfg.NER.Backend)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache disabled by default")
	}
}

func TestBuildConfig_ViperValuesApplied(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	// Values as loaded from ~/.floodlens/config.yaml or FLOODLENS_* env
	viper.Set("ner.backend", "ollama")
	viper.Set("ner.model", "llama3.1:8b")
	viper.Set("ner.timeout", 45)
	viper.Set("cache.enabled", false)
	viper.Set("cache.ttl", "48h")
	viper.Set("concurrency.workers", 3)

	cfg, err := buildConfig(testCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NER.Backend != "ollama" {
		t.Errorf("backend = %q, want ollama", cfg.NER.Backend)
	}
	if cfg.NER.Model != "llama3.1:8b" {
		t.Errorf("model = %q", cfg.NER.Model)
	}
	if cfg.NER.Timeout != 45 {
		t.Errorf("timeout = %d, want 45", cfg.NER.Timeout)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled=false from config not applied")
	}
	if cfg.Cache.TTL != 48*time.Hour {
		t.Errorf("cache ttl = %v, want 48h", cfg.Cache.TTL)
	}
	if cfg.Concurrency.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Concurrency.Workers)
	}
}

func TestBuildConfig_FlagOutranksFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("ner.backend", "ollama")

	cmd := testCommand()
	if err := cmd.Flags().Set("ner", "prose"); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NER.Backend != "prose" {
		t.Errorf("backend = %q, want flag value prose", cfg.NER.Backend)
	}
}
