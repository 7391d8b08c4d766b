package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkabir/floodlens/internal/pipeline"
	"github.com/rkabir/floodlens/internal/util"
	"github.com/rkabir/floodlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	fetchOut     string
	fetchTimeout time.Duration
	userAgent    string
	maxBytes     int64
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <urls.txt>",
	Short: "Download article pages into a corpus directory",
	Long: `Fetch downloads news-article pages listed in a file (one URL per line,
# comments allowed), strips them to plain text, and writes one .txt file
per article into the output directory for later scanning.

Fetching honors robots.txt and rate-limits per host.

Example:
  floodlens fetch urls.txt --out data/raw_articles
  floodlens fetch urls.txt --out data/raw_articles --rps 1`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var fetchRPS float64

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOut, "out", "data/raw_articles", "output directory for article text files")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "timeout per page fetch")
	fetchCmd.Flags().StringVar(&userAgent, "ua", "Floodlens/0.1 (+https://github.com/rkabir/floodlens)", "HTTP User-Agent")
	fetchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	fetchCmd.Flags().Float64Var(&fetchRPS, "rps", 2, "max requests per second per host")
	fetchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	fetchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	fetchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls, err := readURLList(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s: no URLs found\n", args[0])
		return nil
	}

	if err := os.MkdirAll(fetchOut, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fetcher := pipeline.NewFetcher(fetchTimeout, userAgent, maxBytes, insecureTLS, httpProxy, httpsProxy, "")
	robots := util.NewRobotsChecker(userAgent, fetchTimeout)
	limiter := worker.NewLimiter(fetchRPS, 5)

	ctx := context.Background()
	fetched := 0
	skipped := 0

	for _, rawURL := range urls {
		allowed, crawlDelay, _ := robots.CanFetch(ctx, rawURL)
		if !allowed {
			skipped++
			fmt.Fprintf(os.Stderr, "Skipped (robots.txt): %s\n", rawURL)
			continue
		}

		if err := limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}

		result, err := fetcher.FetchWithRetry(ctx, rawURL)
		if err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", rawURL, err)
			continue
		}

		path := uniquePath(filepath.Join(fetchOut, result.Name))
		if err := os.WriteFile(path, []byte(result.Text+"\n"), 0644); err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			continue
		}

		fetched++
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetched %s -> %s\n", rawURL, path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nFetched %d article(s), %d skipped, output: %s\n", fetched, skipped, fetchOut)
	return nil
}

// readURLList reads URLs from a file, one per line, skipping blanks and
// # comments, deduplicated in file order.
func readURLList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL list: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan URL list: %w", err)
	}

	return urls, nil
}

// uniquePath appends a counter when the target file already exists, so two
// URLs with the same slug don't overwrite each other.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
