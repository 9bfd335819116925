package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// DefaultPattern matches the fixtures directly inside the scanned directory.
const DefaultPattern = "*.csv"

// File is a discovered fixture.
type File struct {
	Path string // absolute or root-joined path
	Name string // base name, the catalogue identifier
}

// Scan walks root and returns the regular files whose slash-separated path
// relative to root matches pattern, sorted by path. Patterns without "**" do
// not descend into subdirectories.
func Scan(ctx context.Context, root, pattern string) ([]File, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid fixture pattern %q", pattern)
	}
	root = filepath.Clean(root)
	recursive := strings.Contains(pattern, "**") || strings.Contains(pattern, "/")

	var (
		mu    sync.Mutex
		files []File
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && !recursive {
				return fastwalk.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); !ok {
			return nil
		}

		mu.Lock()
		files = append(files, File{Path: p, Name: d.Name()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
