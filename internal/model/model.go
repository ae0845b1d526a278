// Package model defines the language-neutral structures produced by
// extraction and consumed by the description pipeline and the report
// renderer.
package model

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Import represents a single import declaration in source order.
type Import struct {
	Module  string   `json:"module"`
	Symbols []string `json:"symbols,omitempty"`
}

// TypeDecl represents a type declaration (struct, enum, class, interface, alias).
type TypeDecl struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Line     int    `json:"line"`
	Exported bool   `json:"exported"`
}

// FunctionEntry holds the extracted metadata for one function or method.
// Description stays empty until the description pipeline fills it; it remains
// empty permanently when generation fails.
type FunctionEntry struct {
	Name         string `json:"name"`
	Signature    string `json:"signature"`
	Body         string `json:"body,omitempty"`
	BodyHash     string `json:"body_hash"`
	ReturnPoints int    `json:"return_points"`
	Lines        int    `json:"lines"`
	Line         int    `json:"line"`
	Exported     bool   `json:"exported"`
	Description  string `json:"description,omitempty"`
}

// FileModel is the structural summary of one source file.
type FileModel struct {
	Path      string           `json:"path"`
	Language  string           `json:"language"`
	Imports   []Import         `json:"imports"`
	Functions []*FunctionEntry `json:"functions"`
	Types     []TypeDecl       `json:"types"`
	Exports   []string         `json:"exports"`
}

// HashBody fingerprints a function body for description cache reuse.
func HashBody(body string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(body))
}

// Project aggregates the FileModels of one run, keyed by path with insertion
// order preserved so downstream rendering is deterministic.
type Project struct {
	paths []string
	files map[string]*FileModel
}

func NewProject() *Project {
	return &Project{files: make(map[string]*FileModel)}
}

// Add inserts a FileModel under its path. Duplicate paths are rejected so a
// file can never be summarized twice in one report.
func (p *Project) Add(fm *FileModel) error {
	if _, exists := p.files[fm.Path]; exists {
		return fmt.Errorf("duplicate file path: %s", fm.Path)
	}
	p.paths = append(p.paths, fm.Path)
	p.files[fm.Path] = fm
	return nil
}

// Get returns the FileModel for a path, if present.
func (p *Project) Get(path string) (*FileModel, bool) {
	fm, ok := p.files[path]
	return fm, ok
}

// Files returns all FileModels in insertion order.
func (p *Project) Files() []*FileModel {
	out := make([]*FileModel, 0, len(p.paths))
	for _, path := range p.paths {
		out = append(out, p.files[path])
	}
	return out
}

// Len returns the number of aggregated files.
func (p *Project) Len() int {
	return len(p.paths)
}

// Functions returns every FunctionEntry across all files, in file order then
// declaration order.
func (p *Project) Functions() []*FunctionEntry {
	var out []*FunctionEntry
	for _, fm := range p.Files() {
		out = append(out, fm.Functions...)
	}
	return out
}
