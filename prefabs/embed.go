package prefabs

import (
	"embed"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/roomscroller/overlay"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Files is ./prefabs on disk over the prefabs built into the binary. The
// watcher in watch.go reports edits to the disk side.
var Files = overlay.FS{Dir: "prefabs", Embedded: embedded}

// Load reads a prefab yaml by name, with or without a "prefabs/" prefix.
func Load(name string) ([]byte, error) {
	return Files.ReadFile(prefabName(name))
}

// LoadScript reads an enemy script. "chase.tengo", "scripts/chase.tengo"
// and "prefabs/scripts/chase.tengo" all name the same file.
func LoadScript(name string) ([]byte, error) {
	return Files.ReadFile(scriptName(name))
}

func prefabName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func scriptName(name string) string {
	return path.Join("scripts", strings.TrimPrefix(prefabName(name), "scripts/"))
}
