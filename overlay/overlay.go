// Package overlay reads game data from a directory on disk, falling back to
// the copy embedded in the binary.
package overlay

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS layers Dir over Embedded. Names are slash separated and relative to
// Dir; Embedded is looked up with Clean(name) when Clean is set.
type FS struct {
	Dir      string
	Embedded fs.FS
	Clean    func(name string) string
}

// DiskPath returns the on-disk path for name and whether a regular file
// exists there.
func (o FS) DiskPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	p := filepath.Join(o.Dir, filepath.FromSlash(name))
	info, err := os.Stat(p)
	return p, err == nil && !info.IsDir()
}

// EmbeddedName is the name looked up in Embedded.
func (o FS) EmbeddedName(name string) string {
	if o.Clean != nil {
		return o.Clean(name)
	}
	return name
}

// ReadFile returns the disk copy of name when there is one and the
// embedded copy otherwise.
func (o FS) ReadFile(name string) ([]byte, error) {
	if p, ok := o.DiskPath(name); ok {
		return os.ReadFile(p)
	}
	if o.Embedded == nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(o.Embedded, o.EmbeddedName(name))
}
