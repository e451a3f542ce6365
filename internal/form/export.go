// export.go - Download exporter
package form

import (
	"os"
	"path/filepath"

	"github.com/schema-scout/backend/internal/models"
)

// Saver is the platform file-save capability. The exporter does not
// care where the bytes land; a browser shim, a directory writer, and a
// test double all satisfy it.
type Saver interface {
	Save(filename, content string) error
}

// Filename returns the download name for a format.
func Filename(format OutputFormat) string {
	return "processed_schema." + string(format)
}

// Export serializes the result exactly as the renderer would and hands
// it to the saver. A nil result is a no-op: nothing is rendered and the
// saver is never invoked.
func Export(result models.ProcessingResult, format OutputFormat, saver Saver) error {
	if result == nil {
		return nil
	}
	return saver.Save(Filename(format), Render(result, format))
}

// DirSaver saves exports into a directory on the local filesystem.
type DirSaver struct {
	Dir string
}

// Save writes the content under the saver's directory. The file handle
// is released before returning; one acquire/release per export.
func (d DirSaver) Save(filename, content string) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, filename), []byte(content), 0644)
}
