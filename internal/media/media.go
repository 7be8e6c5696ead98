package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the largest accepted image upload (5 MiB).
const MaxUploadSize = 5 << 20

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads/"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedExtension reports whether the filename has an accepted image
// extension (case-insensitive).
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Store is a filesystem directory holding uploaded images, referenced by
// relative URLs under URLPrefix.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under a fresh random filename keeping the extension of
// the original name, and returns the relative URL of the stored file.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return URLPrefix + name, nil
}

// Path resolves a stored file's relative URL to its path on disk. Only the
// basename of the URL is used, so a tampered URL cannot escape the directory.
func (s *Store) Path(url string) string {
	return filepath.Join(s.dir, filepath.Base(url))
}

// Exists reports whether the file referenced by the relative URL is on disk.
func (s *Store) Exists(url string) bool {
	_, err := os.Stat(s.Path(url))
	return err == nil
}

// Remove deletes the file referenced by the relative URL.
func (s *Store) Remove(url string) error {
	if err := os.Remove(s.Path(url)); err != nil {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}
