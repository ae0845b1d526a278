package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Israel-Laguan/folder-summary/internal/lang"
)

const rustSource = `use std::collections::HashMap;

// Look up a key with a fallback.
pub fn lookup(map: &HashMap<String, i32>, key: &str) -> i32 {
    if let Some(v) = map.get(key) {
        return *v;
    }
    return 0;
}

fn helper() {}

pub struct Table {
    entries: HashMap<String, i32>,
}
`

func TestExtractRust(t *testing.T) {
	g := lang.Grammars["rust"]
	fm := Extract(g, "src/lib.rs", rustSource)

	require.Len(t, fm.Imports, 1)
	assert.Equal(t, "std::collections::HashMap", fm.Imports[0].Module)

	require.Len(t, fm.Functions, 2)

	lookup := fm.Functions[0]
	assert.Equal(t, "lookup", lookup.Name)
	assert.Equal(t, `fn lookup(map: &HashMap<String, i32>, key: &str) -> i32`, lookup.Signature)
	assert.Equal(t, 2, lookup.ReturnPoints)
	assert.Equal(t, 6, lookup.Lines)
	assert.True(t, lookup.Exported)
	assert.NotEmpty(t, lookup.BodyHash)

	helper := fm.Functions[1]
	assert.Equal(t, "helper", helper.Name)
	assert.False(t, helper.Exported)
	assert.Equal(t, 0, helper.ReturnPoints)
	assert.Equal(t, 1, helper.Lines)

	require.Len(t, fm.Types, 1)
	assert.Equal(t, "Table", fm.Types[0].Name)
	assert.Equal(t, "struct", fm.Types[0].Kind)

	assert.ElementsMatch(t, []string{"lookup", "Table"}, fm.Exports)
}

func TestExtractRustUseList(t *testing.T) {
	g := lang.Grammars["rust"]
	fm := Extract(g, "src/lib.rs", "use crate::codec::{Encoder, Decoder};\n")

	require.Len(t, fm.Imports, 1)
	assert.Equal(t, "crate::codec", fm.Imports[0].Module)
	assert.Equal(t, []string{"Encoder", "Decoder"}, fm.Imports[0].Symbols)
}

const pythonSource = `import os
from typing import List, Optional

__all__ = ["parse", "Config", "missing"]

def parse(text: str) -> List[str]:
    if not text:
        return []
    return text.split()

def _hidden():
    return None

class Config:
    def __init__(self, path):
        self.path = path
`

func TestExtractPython(t *testing.T) {
	g := lang.Grammars["python"]
	fm := Extract(g, "tool/run.py", pythonSource)

	require.Len(t, fm.Imports, 2)
	assert.Equal(t, "os", fm.Imports[0].Module)
	assert.Equal(t, "typing", fm.Imports[1].Module)
	assert.Equal(t, []string{"List", "Optional"}, fm.Imports[1].Symbols)

	require.Len(t, fm.Functions, 3)
	assert.Equal(t, "parse", fm.Functions[0].Name)
	assert.Equal(t, "def parse(text: str) -> List[str]:", fm.Functions[0].Signature)
	assert.Equal(t, 2, fm.Functions[0].ReturnPoints)
	assert.True(t, fm.Functions[0].Exported)

	assert.Equal(t, "_hidden", fm.Functions[1].Name)
	assert.False(t, fm.Functions[1].Exported)

	// methods are extracted but never exported
	assert.Equal(t, "__init__", fm.Functions[2].Name)
	assert.False(t, fm.Functions[2].Exported)

	require.Len(t, fm.Types, 1)
	assert.Equal(t, "Config", fm.Types[0].Name)
	assert.Equal(t, "class", fm.Types[0].Kind)

	// __all__ wins, filtered to names the file declares
	assert.Equal(t, []string{"parse", "Config"}, fm.Exports)
	assert.NotContains(t, fm.Exports, "missing")
}

func TestExtractPythonWithoutAll(t *testing.T) {
	g := lang.Grammars["python"]
	fm := Extract(g, "tool/run.py", "def visible():\n    pass\n\ndef _internal():\n    pass\n")

	assert.Equal(t, []string{"visible"}, fm.Exports)
}

const tsSource = `import { readFile } from "fs/promises";
const path = require("path");

export function loadConfig(file: string): Promise<Config> {
  return readFile(file).then(parse);
}

const parse = (raw: string): Config => {
  return JSON.parse(raw);
};

export interface Config {
  name: string;
}

export { parse, loadConfig as load, ghost };
`

func TestExtractTypeScript(t *testing.T) {
	g := lang.Grammars["javascript"]
	fm := Extract(g, "src/config.ts", tsSource)

	require.Len(t, fm.Imports, 2)
	assert.Equal(t, "fs/promises", fm.Imports[0].Module)
	assert.Equal(t, []string{"readFile"}, fm.Imports[0].Symbols)
	assert.Equal(t, "path", fm.Imports[1].Module)

	require.Len(t, fm.Functions, 2)
	assert.Equal(t, "loadConfig", fm.Functions[0].Name)
	assert.True(t, fm.Functions[0].Exported)
	assert.Equal(t, 1, fm.Functions[0].ReturnPoints)
	assert.Equal(t, "parse", fm.Functions[1].Name)
	assert.False(t, fm.Functions[1].Exported)

	require.Len(t, fm.Types, 1)
	assert.Equal(t, "Config", fm.Types[0].Name)
	assert.Equal(t, "interface", fm.Types[0].Kind)

	// export lists may only re-export declared names
	assert.ElementsMatch(t, []string{"loadConfig", "Config", "parse"}, fm.Exports)
	assert.NotContains(t, fm.Exports, "ghost")
}

func TestExtractNeverInventsExports(t *testing.T) {
	sources := map[string]string{
		"rust":       rustSource,
		"python":     pythonSource,
		"javascript": tsSource,
	}
	for name, source := range sources {
		g := lang.Grammars[name]
		fm := Extract(g, "file", source)

		declared := make(map[string]bool)
		for _, fn := range fm.Functions {
			declared[fn.Name] = true
		}
		for _, ty := range fm.Types {
			declared[ty.Name] = true
		}
		for _, export := range fm.Exports {
			assert.True(t, declared[export], "%s export %q is not declared", name, export)
		}
	}
}

func TestExtractIdempotent(t *testing.T) {
	g := lang.Grammars["rust"]
	first := Extract(g, "src/lib.rs", rustSource)
	second := Extract(g, "src/lib.rs", rustSource)
	require.Equal(t, first, second)
}

func TestBodyHashDeterministic(t *testing.T) {
	g := lang.Grammars["python"]
	source := "def one():\n    return 1\n\ndef two():\n    return 1\n"
	fm := Extract(g, "run.py", source)

	require.Len(t, fm.Functions, 2)
	// names differ but the hash only covers the body below the header
	assert.NotEqual(t, fm.Functions[0].BodyHash, fm.Functions[1].BodyHash)

	again := Extract(g, "run.py", source)
	assert.Equal(t, fm.Functions[0].BodyHash, again.Functions[0].BodyHash)
}

func TestExtractFileRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.rs")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644))

	_, err := ExtractFile(lang.Grammars["rust"], path, "bad.rs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(lang.Grammars["rust"], filepath.Join(t.TempDir(), "nope.rs"), "nope.rs")
	require.Error(t, err)
}
