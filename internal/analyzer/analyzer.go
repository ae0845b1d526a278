// Package analyzer drives extraction over a discovered file set and
// aggregates the per-file results into a Project.
package analyzer

import (
	"path/filepath"
	"runtime"
	"sync"

	"github.com/Israel-Laguan/folder-summary/internal/crawler"
	"github.com/Israel-Laguan/folder-summary/internal/extractor"
	"github.com/Israel-Laguan/folder-summary/internal/lang"
	"github.com/Israel-Laguan/folder-summary/internal/model"
)

// Result is the structural analysis of one directory tree. Diagnostics
// collect the files that were skipped and why; they never abort a run.
type Result struct {
	Project     *model.Project
	Diagnostics []string
}

// Analyze discovers the source files under root and extracts each of them.
// It fails only when root itself cannot be read.
func Analyze(root string, workers int) (*Result, error) {
	files, err := crawler.Discover(root)
	if err != nil {
		return nil, err
	}
	return AnalyzeFiles(root, files, workers), nil
}

// AnalyzeFiles extracts an already-discovered file list. Files are scanned
// concurrently but aggregated in input order, so the resulting Project is
// identical across runs.
func AnalyzeFiles(root string, files []crawler.FileEntry, workers int) *Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	models := make([]*model.FileModel, len(files))
	errors := make([]error, len(files))

	work := make(chan int, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				f := files[idx]
				g, ok := lang.Grammars[f.Language]
				if !ok {
					continue
				}
				fm, err := extractor.ExtractFile(g, filepath.Join(root, f.Path), f.Path)
				if err != nil {
					errors[idx] = err
					continue
				}
				models[idx] = fm
			}
		}()
	}
	for idx := range files {
		work <- idx
	}
	close(work)
	wg.Wait()

	result := &Result{Project: model.NewProject()}
	for idx, fm := range models {
		if errors[idx] != nil {
			result.Diagnostics = append(result.Diagnostics, "skipped "+files[idx].Path+": "+errors[idx].Error())
			continue
		}
		if fm == nil {
			continue
		}
		if err := result.Project.Add(fm); err != nil {
			result.Diagnostics = append(result.Diagnostics, err.Error())
		}
	}
	return result
}
