// Package library enumerates the audio files of the watched music directory
// and keeps the metadata preview cache behind the status line.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions are the file extensions listed by the library.
var audioExtensions = map[string]bool{
	".mp3": true,
}

// Library holds the ordered file listing of one music directory. Items are
// display names (base filenames); Path resolves them back to full paths.
type Library struct {
	dir   string
	files []string
}

// New creates a Library over dir. Call Load to populate it.
func New(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the watched directory.
func (l *Library) Dir() string {
	return l.dir
}

// Load scans the directory and replaces the file listing with the audio
// files found, sorted by name.
func (l *Library) Load() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", l.dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	l.files = files

	return nil
}

// Files returns the current listing. The returned slice must not be mutated.
func (l *Library) Files() []string {
	return l.files
}

// Path resolves a display name to its full path.
func (l *Library) Path(name string) string {
	return filepath.Join(l.dir, name)
}

// Rename renames the file with display name old to newName on disk and
// replaces the listing entry in place, keeping positions stable for the
// cursor. Collisions are not resolved here; the OS error propagates.
func (l *Library) Rename(old, newName string) error {
	if err := os.Rename(l.Path(old), l.Path(newName)); err != nil {
		return fmt.Errorf("renaming %s: %w", old, err)
	}

	l.Replace(old, newName)

	return nil
}

// Replace swaps a listing entry in place without touching the disk.
func (l *Library) Replace(old, newName string) {
	for i, f := range l.files {
		if f == old {
			l.files[i] = newName
			return
		}
	}
}
