// Package extractor converts raw source text into FileModels. A single
// line-oriented scanning pass serves all grammars; everything language
// specific lives in the lang.Grammar tables. This is deliberately not a
// parser: a keyword inside a multi-line string may be misread, which is an
// accepted best-effort limitation.
package extractor

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Israel-Laguan/folder-summary/internal/lang"
	"github.com/Israel-Laguan/folder-summary/internal/model"
)

// ExtractFile reads a source file and scans it with the given grammar.
// The model's Path is set to rel so report ordering is root-relative.
func ExtractFile(g *lang.Grammar, path, rel string) (*model.FileModel, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", rel, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("file %s is not valid UTF-8", rel)
	}
	return Extract(g, rel, string(content)), nil
}

// Extract scans source text into a FileModel. It never fails: ambiguous or
// malformed constructs degrade to partial results.
func Extract(g *lang.Grammar, path, source string) *model.FileModel {
	fm := &model.FileModel{Path: path, Language: g.Name}
	lines := strings.Split(source, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, g.Comment) {
			continue
		}

		if matchImport(g, fm, line) {
			continue
		}
		if matchFunction(g, fm, lines, i) {
			continue
		}
		matchType(g, fm, line, i)
	}

	fm.Exports = dedupe(g.Exports(fm, source))
	return fm
}

func matchImport(g *lang.Grammar, fm *model.FileModel, line string) bool {
	for _, r := range g.Imports {
		if m := r.Re.FindStringSubmatch(line); m != nil {
			fm.Imports = append(fm.Imports, r.Build(m))
			return true
		}
	}
	return false
}

func matchFunction(g *lang.Grammar, fm *model.FileModel, lines []string, i int) bool {
	for _, r := range g.Functions {
		m := r.Re.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name, sig := r.Build(m)
		body := blockAt(g.Block, lines, i)
		fm.Functions = append(fm.Functions, &model.FunctionEntry{
			Name:         name,
			Signature:    sig,
			Body:         body,
			BodyHash:     model.HashBody(body),
			ReturnPoints: countReturns(g, body),
			Lines:        len(strings.Split(body, "\n")),
			Line:         i + 1,
			Exported:     r.Exported(m),
		})
		return true
	}
	return false
}

func matchType(g *lang.Grammar, fm *model.FileModel, line string, i int) {
	for _, r := range g.Types {
		if m := r.Re.FindStringSubmatch(line); m != nil {
			fm.Types = append(fm.Types, model.TypeDecl{
				Name:     m[2],
				Kind:     r.Kind,
				Line:     i + 1,
				Exported: r.Exported(m),
			})
			return
		}
	}
}

// blockAt delimits the body that starts at lines[start], header included.
func blockAt(style lang.BlockStyle, lines []string, start int) string {
	if style == lang.IndentBlocks {
		return indentBlock(lines, start)
	}
	return braceBlock(lines, start)
}

// braceBlock accumulates lines while tracking brace depth; the block ends
// when depth returns to zero after the first open brace. Headers without a
// body (trait methods, expression-bodied arrows) end at the header line.
func braceBlock(lines []string, start int) string {
	var body []string
	depth := 0
	seen := false

	for j := start; j < len(lines); j++ {
		line := lines[j]
		body = append(body, line)

		opens := strings.Count(line, "{")
		depth += opens - strings.Count(line, "}")
		if opens > 0 {
			seen = true
		}
		if seen && depth <= 0 {
			break
		}
		if !seen && strings.HasSuffix(strings.TrimSpace(line), ";") {
			break
		}
	}
	return strings.Join(body, "\n")
}

// indentBlock ends when a non-blank line returns to or below the defining
// line's indentation.
func indentBlock(lines []string, start int) string {
	defIndent := indentWidth(lines[start])
	end := start

	for j := start + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		if indentWidth(lines[j]) <= defIndent {
			break
		}
		end = j
	}
	return strings.Join(lines[start:end+1], "\n")
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func countReturns(g *lang.Grammar, body string) int {
	n := 0
	for _, line := range strings.Split(body, "\n") {
		n += len(g.ReturnRe.FindAllString(line, -1))
	}
	return n
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
