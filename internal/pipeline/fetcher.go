package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rkabir/floodlens/internal/util"
	"golang.org/x/net/html"
)

// Fetcher downloads article pages and reduces them to plain text for the
// corpus directory. Only the fetch command uses it; the extraction pipeline
// itself never touches the network.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// fetchSleepFunc is replaced in tests to skip retry backoff
var fetchSleepFunc = time.Sleep

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// FetchResult contains the fetched article text and metadata
type FetchResult struct {
	Text     string // Visible text, HTML stripped
	HTML     string // Raw body as fetched
	Name     string // Suggested corpus file name, derived from the URL
	FinalURL string
}

// Fetch retrieves one article page and strips it to plain text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	rawHTML := string(body)
	finalURL := resp.Request.URL.String()

	return &FetchResult{
		Text:     htmlToText(rawHTML),
		HTML:     rawHTML,
		Name:     articleName(finalURL),
		FinalURL: finalURL,
	}, nil
}

// FetchWithRetry fetches with retries on transient failures (5xx, 429).
// Client errors like 404 fail immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	const maxAttempts = 3

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == maxAttempts {
			break
		}
		fetchSleepFunc(time.Duration(attempt) * time.Second)
	}

	return nil, lastErr
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.code, e.status)
}

func isTransient(err error) bool {
	se, ok := err.(*statusError)
	if !ok {
		return false
	}
	return se.code >= 500 || se.code == http.StatusTooManyRequests
}

// htmlToText extracts the visible text from an HTML page, skipping
// scripts, styles, and embedded frames.
func htmlToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}

// articleName derives a corpus file name from the final URL
func articleName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "article.txt"
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host + ".txt"
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// Drop any file extension, keep the slug
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	if last == "" {
		last = parsed.Host
	}

	return last + ".txt"
}
