package levels

import (
	"embed"

	"github.com/milk9111/roomscroller/overlay"
)

// DefaultWorld is the world played when no --world is given.
const DefaultWorld = "worlds/world1.ldtk"

//go:embed worlds/*.ldtk
var Embedded embed.FS

// LoadWorld loads name from disk when it exists there and from the
// embedded worlds otherwise.
func LoadWorld(name string, opts ...Option) (*World, error) {
	if path, ok := (overlay.FS{Embedded: Embedded}).DiskPath(name); ok {
		return Load(path, opts...)
	}
	return LoadFS(Embedded, name, opts...)
}
