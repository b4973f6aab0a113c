package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is the set of artifacts under an output root. Presence of a file is
// the only state it keeps: an existing artifact is never rewritten.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates a store rooted at root on the given filesystem.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// NewOSStore creates a store on the real filesystem.
func NewOSStore(root string) *Store {
	return NewStore(afero.NewOsFs(), root)
}

// Root returns the output root.
func (s *Store) Root() string {
	return s.root
}

// Fs returns the underlying filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Path returns the filesystem path of a relative target path.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Exists reports whether an artifact is present at rel.
func (s *Store) Exists(rel string) (bool, error) {
	info, err := s.fs.Stat(s.Path(rel))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", rel, err)
}

// Write stores data at rel. The data goes to a temporary file first which is
// renamed into place, so a failed write never leaves a partial artifact at
// rel.
func (s *Store) Write(rel string, data []byte) error {
	target := s.Path(rel)
	if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	tempPath := target + ".tmp"
	file, err := s.fs.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", rel, err)
	}

	_, err = file.Write(data)
	closeErr := file.Close()

	if err != nil {
		s.fs.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if closeErr != nil {
		s.fs.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", rel, closeErr)
	}

	if err := s.fs.Rename(tempPath, target); err != nil {
		s.fs.Remove(tempPath)
		return fmt.Errorf("failed to move %s into place: %w", rel, err)
	}
	return nil
}

// Remove deletes the artifact at rel. A missing artifact is not an error.
func (s *Store) Remove(rel string) (bool, error) {
	err := s.fs.Remove(s.Path(rel))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to remove %s: %w", rel, err)
}

// EnsureLayout creates the given directories under the root.
func (s *Store) EnsureLayout(dirs []string) error {
	for _, dir := range dirs {
		if err := s.fs.MkdirAll(s.Path(dir), 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// RootExists reports whether the output root is present.
func (s *Store) RootExists() bool {
	ok, err := afero.DirExists(s.fs, s.root)
	return err == nil && ok
}

// Purge removes the whole output tree.
func (s *Store) Purge() error {
	if err := s.fs.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to purge %s: %w", s.root, err)
	}
	return nil
}
