package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to their paths, next to the source
// files they were generated from.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := os.MkdirAll(filepath.Dir(file.Filename), dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err := os.WriteFile(file.Filename, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// RemoveFiles deletes generated files that are no longer produced. Files
// already gone are ignored.
func RemoveFiles(names []string) error {
	for _, name := range names {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing file %s: %w", name, err)
		}
	}

	return nil
}
