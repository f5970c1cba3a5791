package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore reads and writes backup documents in a local directory.
// I/O failures surface as absent/false rather than errors; the caller
// decides how to present them.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Read returns the named document, or ok=false if it cannot be read.
func (s *FileStore) Read(name string) (string, bool) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Write stores a document under the given name, reporting success.
func (s *FileStore) Write(name, content string) bool {
	return os.WriteFile(s.Path(name), []byte(content), 0644) == nil
}

// Path resolves a file name inside the backup directory. Only the base
// name is used, so callers cannot escape the directory.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}

// List returns the backup file names, newest name first.
func (s *FileStore) List() []string {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return []string{}
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	// File names embed the export timestamp, so reverse-lexical order
	// is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

func (s *FileStore) Delete(name string) error {
	return os.Remove(s.Path(name))
}
