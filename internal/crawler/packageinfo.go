package crawler

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// PackageInfo maps package names to versions found in manifest files at the
// root of the scanned directory (package.json for npm, Cargo.toml for Rust).
func PackageInfo(root string) map[string]string {
	info := make(map[string]string)
	if name, version, ok := readNpmManifest(root); ok {
		info[name] = version
	}
	if name, version, ok := readCargoManifest(root); ok {
		info[name] = version
	}
	return info
}

// ProjectName derives a display name for the scanned directory from its
// manifest files, falling back to the directory basename.
func ProjectName(root string) string {
	if name, _, ok := readCargoManifest(root); ok {
		return name
	}
	if name, _, ok := readNpmManifest(root); ok {
		return name
	}
	if abs, err := filepath.Abs(root); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(root)
}

func readNpmManifest(root string) (name, version string, ok bool) {
	content, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return "", "", false
	}
	var pkg struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if json.Unmarshal(content, &pkg) != nil || pkg.Name == "" {
		return "", "", false
	}
	return pkg.Name, pkg.Version, true
}

func readCargoManifest(root string) (name, version string, ok bool) {
	content, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return "", "", false
	}
	var manifest struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if toml.Unmarshal(content, &manifest) != nil || manifest.Package.Name == "" {
		return "", "", false
	}
	return manifest.Package.Name, manifest.Package.Version, true
}
