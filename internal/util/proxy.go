package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector for outbound article and
// robots.txt requests. Explicit proxy URLs win over the process
// environment; hosts matched by noProxy (comma-separated names, suffix
// match per label) connect directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := splitNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostMatches(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// splitNoProxy parses a comma-separated host list
func splitNoProxy(noProxy string) []string {
	var hosts []string
	for _, part := range strings.Split(noProxy, ",") {
		if host := strings.TrimSpace(part); host != "" {
			hosts = append(hosts, strings.ToLower(host))
		}
	}
	return hosts
}

// hostMatches reports whether host equals an entry or is a subdomain of one
func hostMatches(host string, entries []string) bool {
	host = strings.ToLower(host)
	for _, entry := range entries {
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
