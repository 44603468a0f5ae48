package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// DirectoryPattern is appended to directory arguments.
const DirectoryPattern = "**/*.log"

// ErrNoMatches is returned when a glob matches nothing.
var ErrNoMatches = errors.New("no files matched")

// Expand resolves patterns into a deduplicated, sorted list of files.
// Existing files are kept as given and existing directories are searched
// for logs, so bracketed album folders are never read as patterns. Missing
// plain paths are kept so the read error is reported against that path.
func Expand(patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := expandOne(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out, nil
}

func expandOne(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil {
		if !info.IsDir() {
			return []string{filepath.Clean(pattern)}, nil
		}
		return expandDir(filepath.Clean(pattern))
	}
	if !hasMeta(pattern) {
		return []string{filepath.Clean(pattern)}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, ErrNoMatches)
	}
	return matches, nil
}

// expandDir globs below dir without parsing dir itself as a pattern.
func expandDir(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), DirectoryPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, DirectoryPattern), ErrNoMatches)
	}
	return lo.Map(matches, func(match string, _ int) string {
		return filepath.Join(dir, filepath.FromSlash(match))
	}), nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
