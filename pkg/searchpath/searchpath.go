// Package searchpath derives the ordered template and attribute-file
// search path from a set of input roots.
package searchpath

import (
	"fmt"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// DefaultFolderName is the per-directory folder templates live in.
const DefaultFolderName = ".coral"

// Settings carries the fixed subfolder name appended to every candidate
// directory.
type Settings struct {
	FolderName string
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{FolderName: DefaultFolderName}
}

// Prepare expands and absolutizes every root, walks each up through every
// ancestor directory to the filesystem root, deduplicates the result
// preserving first-occurrence order, and appends the settings folder name
// to each directory. Candidate directories need not exist.
func Prepare(settings Settings, roots []string) ([]string, error) {
	folder := settings.FolderName
	if folder == "" {
		folder = DefaultFolderName
	}

	seen := make(map[string]struct{})
	var out []string
	for _, root := range roots {
		expanded, err := homedir.Expand(root)
		if err != nil {
			return nil, fmt.Errorf("searchpath: expand %q: %w", root, err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("searchpath: resolve %q: %w", root, err)
		}
		for _, dir := range ancestors(abs) {
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			out = append(out, filepath.Join(dir, folder))
		}
	}
	return out, nil
}

// ancestors returns path followed by every parent directory up to and
// including the filesystem root.
func ancestors(path string) []string {
	var out []string
	for {
		out = append(out, path)
		parent := filepath.Dir(path)
		if parent == path {
			return out
		}
		path = parent
	}
}
