package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrNoArticles is returned when the input directory holds no eligible
// files. A missing directory or an empty corpus is a configuration problem
// for the operator, not a processing failure.
type ErrNoArticles struct {
	Dir    string
	Reason string
}

func (e *ErrNoArticles) Error() string {
	return fmt.Sprintf("%s: %s", e.Dir, e.Reason)
}

// ListArticles returns the paths of the article files in dir: *.txt only,
// no recursion into subdirectories, sorted for a stable processing order.
func ListArticles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrNoArticles{Dir: dir, Reason: "directory not found"}
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, &ErrNoArticles{Dir: dir, Reason: "no .txt files found"}
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadArticle reads one article file fully into memory. Articles are small;
// there is no streaming. Returns the text and the base file name.
func ReadArticle(path string) (text, name string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read article: %w", err)
	}

	if !utf8.Valid(data) {
		return "", "", fmt.Errorf("read article %s: not valid UTF-8", filepath.Base(path))
	}

	return string(data), filepath.Base(path), nil
}
