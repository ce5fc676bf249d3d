package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Artifact is a temporary file owned by a single generation step.
// Release deletes it; the owner defers Release right after acquisition so
// the file is removed on every exit path.
type Artifact struct {
	path string
	once sync.Once
	err  error
}

func newArtifact(path string) *Artifact {
	return &Artifact{path: path}
}

// Path returns the artifact's location on disk.
func (a *Artifact) Path() string {
	return a.path
}

// Release removes the file. It is safe to call more than once and treats
// an already missing file as success.
func (a *Artifact) Release() error {
	a.once.Do(func() {
		if err := os.Remove(a.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.err = fmt.Errorf("remove temp file %s: %w", a.path, err)
		}
	})
	return a.err
}
