// Package library implements the file-level commands: reading an image as a
// data URI and moving a file out of the way into a sibling Excluded folder.
package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/maauso/clipthumb/internal/media"
)

// ExcludedDir is the name of the folder excluded files are moved into.
const ExcludedDir = "Excluded"

// ReadImage reads the file at path and returns it as a data URI.
// The MIME type comes from the file extension.
func ReadImage(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: image path is required", media.ErrInvalidArgument)
	}

	data, err := os.ReadFile(path) // #nosec G304 - reading user-selected files is the point
	if err != nil {
		return "", fmt.Errorf("%w: read image: %w", media.ErrFilesystem, err)
	}

	return media.EncodeDataURI(media.MIMEFromPath(path), data), nil
}

// Exclude moves the file at path into an Excluded folder next to it,
// creating the folder if needed, and returns the new path.
// An existing file with the same name in Excluded is replaced.
func Exclude(path string) (string, error) {
	name := filepath.Base(path)
	if path == "" || name == "." || name == string(filepath.Separator) || name == ".." {
		return "", fmt.Errorf("%w: %q has no file name", media.ErrInvalidArgument, path)
	}

	dir := filepath.Join(filepath.Dir(path), ExcludedDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("%w: create %s folder: %w", media.ErrFilesystem, ExcludedDir, err)
	}

	dst := filepath.Join(dir, name)
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("%w: move file: %w", media.ErrFilesystem, err)
	}

	return dst, nil
}
