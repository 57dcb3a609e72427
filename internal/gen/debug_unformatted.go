package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes the raw template output to a sidecar file so
// a formatting failure can be inspected. Errors are returned but callers
// treat the write as best-effort.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	// The leading underscore keeps the go tool from compiling the sidecar.
	debugName := "_" + strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
