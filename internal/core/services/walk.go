package services

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// ExcludeMatcher decides which paths are left out of walks.
// Patterns are doublestar globs. A pattern without a slash matches the
// base name at any depth; any other pattern matches the absolute path.
type ExcludeMatcher struct {
	patterns []string
}

// NewExcludeMatcher validates patterns and returns a matcher.
func NewExcludeMatcher(patterns []string) (*ExcludeMatcher, error) {
	m := &ExcludeMatcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: bad exclude pattern %q", domain.ErrInvalidInput, p)
		}
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

// Match reports whether path is excluded. A nil matcher excludes nothing.
func (m *ExcludeMatcher) Match(path string) bool {
	if m == nil {
		return false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, p := range m.patterns {
		target := slashed
		if !strings.Contains(p, "/") {
			target = base
		}
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}

// resolveDir returns the absolute form of dir with symbolic links resolved,
// so that a linked root and its target name the same files. If the links
// cannot be resolved the absolute path is returned.
func resolveDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// resolveFile resolves the directory part of path and keeps its base name,
// matching the paths collectFiles reports for linked files.
func resolveFile(path string) string {
	return filepath.Join(resolveDir(filepath.Dir(path)), filepath.Base(path))
}

// collectFiles returns every regular file under root in lexical order.
// The root itself is resolved first, so a root that links to a directory is
// walked. Unreadable directories and broken entries are skipped silently.
// Symbolic links to regular files are included; linked directories below the
// root are not followed. A root that is itself a regular file yields just
// that file.
func collectFiles(root string, exclude *ExcludeMatcher) []string {
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		root = resolveDir(root)
	}
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if exclude.Match(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isRegularFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// isRegularFile reports whether an entry is, or links to, a regular file.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
