package assets

import (
	"os"
	"path/filepath"
)

// FileLoader reads raw asset bytes. Load must eventually invoke done
// exactly once; it may do so from any goroutine.
type FileLoader interface {
	Load(path string, done func(data []byte, err error))
}

// DirLoader reads assets from a directory on the local filesystem.
// Reads happen on their own goroutine so a tick never blocks on I/O.
type DirLoader struct {
	Root string
}

// Load reads the file at Root/path asynchronously.
func (l DirLoader) Load(path string, done func(data []byte, err error)) {
	full := filepath.Join(l.Root, path)
	go func() {
		data, err := os.ReadFile(full)
		done(data, err)
	}()
}
