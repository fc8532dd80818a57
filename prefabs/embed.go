package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Prefab YAML and tengo scripts ship in the binary. A prefabs/ directory
// next to the working directory shadows them so edits apply without a
// rebuild.
var (
	//go:embed *.yaml
	PrefabsFS embed.FS

	//go:embed scripts/*.tengo
	ScriptsFS embed.FS
)

// Load reads a prefab YAML by name ("player.yaml", "prefabs/level.yaml").
func Load(name string) ([]byte, error) {
	return readShadowed(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a tengo input script. Bare names are looked up under
// scripts/.
func LoadScript(name string) ([]byte, error) {
	return readShadowed(ScriptsFS, cleanScriptPath(name))
}

func readShadowed(embedded fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

// ScriptNames lists the embedded scripts.
func ScriptNames() ([]string, error) {
	entries, err := fs.ReadDir(ScriptsFS, "scripts")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list scripts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LevelNames lists embedded prefabs that are levels, without extension.
func LevelNames() ([]string, error) {
	files, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list levels: %w", err)
	}
	var names []string
	for _, f := range files {
		if f == "player.yaml" || f == "camera.yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(f, ".yaml"))
	}
	slices.Sort(names)
	return names, nil
}

func cleanPrefabPath(name string) string {
	s := filepath.ToSlash(name)
	return strings.TrimPrefix(s, "prefabs/")
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
