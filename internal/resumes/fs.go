package resumes

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FS implements Provider backed by a directory on the local file system.
type FS struct {
	root string
}

// NewFS creates the resumes directory if needed and returns a provider
// rooted there.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resumes: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("resumes: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// UniqueName generates a collision-free stored name for an upload,
// preserving the original file extension.
func UniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

// safeName validates that name is a plain file name (no separators, no
// traversal) and returns its absolute path under the root.
func (f *FS) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("resumes: name is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("resumes: invalid name: %s", name)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("resumes: path escapes root: %s", name)
	}
	return abs, nil
}

// Save atomically writes the blob: tmp file, fsync, rename.
func (f *FS) Save(name string, r io.Reader) (int64, error) {
	abs, err := f.safeName(name)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(f.root, ".resume-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("resumes: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		return 0, fmt.Errorf("resumes: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("resumes: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("resumes: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return 0, fmt.Errorf("resumes: rename: %w", err)
	}
	success = true
	return written, nil
}

// Abs resolves a stored name to its absolute path.
func (f *FS) Abs(name string) (string, error) {
	return f.safeName(name)
}

// Remove deletes a stored blob.
func (f *FS) Remove(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("resumes: remove %s: %w", name, err)
	}
	return nil
}
