package util

import (
	"net/http"
	"testing"
)

func newRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "http://proxy-b:3128", "")

	u, err := proxy(newRequest(t, "https://example.com/page"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy-b:3128" {
		t.Errorf("https request routed to %v, want proxy-b", u)
	}

	u, err = proxy(newRequest(t, "http://example.com/page"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy-a:3128" {
		t.Errorf("http request routed to %v, want proxy-a", u)
	}
}

func TestNewProxyFunc_HTTPProxyCoversHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "")

	u, err := proxy(newRequest(t, "https://example.com/page"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy-a:3128" {
		t.Errorf("https request routed to %v, want proxy-a fallback", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "example.com, internal.local")

	// Exact match and subdomains connect directly
	for _, rawURL := range []string{
		"http://example.com/page",
		"http://news.example.com/page",
		"http://internal.local/page",
	} {
		u, err := proxy(newRequest(t, rawURL))
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Errorf("%s routed through proxy %v, want direct", rawURL, u)
		}
	}

	// Unrelated hosts still use the proxy; no substring matching
	for _, rawURL := range []string{
		"http://other.org/page",
		"http://notexample.com/page",
	} {
		u, err := proxy(newRequest(t, rawURL))
		if err != nil {
			t.Fatal(err)
		}
		if u == nil || u.Host != "proxy-a:3128" {
			t.Errorf("%s routed to %v, want proxy-a", rawURL, u)
		}
	}
}
