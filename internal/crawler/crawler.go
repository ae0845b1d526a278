// Package crawler discovers the candidate source files for a run, honoring
// .gitignore rules and a default set of skipped directories.
package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/Israel-Laguan/folder-summary/internal/lang"
)

// Files larger than this are skipped; generated bundles and lockfiles are
// rarely worth summarizing.
const maxFileSize = 1_000_000

// FileEntry is one discovered source file.
type FileEntry struct {
	Path     string // relative to the scanned root
	Language string
}

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"target":       {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"__pycache__":  {},
	"venv":         {},
	".venv":        {},
	"testdata":     {},
}

// Discover walks root and returns the classifiable source files in sorted
// order. Only a root that cannot be read at all is fatal; unreadable
// subtrees are skipped.
func Discover(root string) ([]FileEntry, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("cannot read target directory %s: %w", root, err)
	}

	gi := loadGitignore(root)
	var results []FileEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		grammar := lang.Detect(name)
		if grammar == "" {
			return nil
		}

		if info, err := d.Info(); err == nil && info.Size() > maxFileSize {
			return nil
		}

		results = append(results, FileEntry{Path: rel, Language: grammar})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// DocFiles lists documentation files (md, txt, rst) under root, for the
// report's documentation section.
func DocFiles(root string) []string {
	var docs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip || (path != root && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".md", ".txt", ".rst":
			if rel, err := filepath.Rel(root, path); err == nil {
				docs = append(docs, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	sort.Strings(docs)
	return docs
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
