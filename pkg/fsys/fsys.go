package fsys

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// Kind classifies a resource on disk.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindUnknown   Kind = "unknown"
)

// Entry is a single directory listing result.
type Entry struct {
	Name string
	Kind Kind
}

// Metadata resolves the kind of a resource. A failed stat is reported as
// an error together with KindUnknown; callers decide whether to surface
// or downgrade it.
type Metadata interface {
	Stat(ctx context.Context, path string) (Kind, error)
}

// Lister enumerates the entries of a directory in the order the
// filesystem yields them.
type Lister interface {
	List(ctx context.Context, path string) ([]Entry, error)
}

// OS implements Metadata and Lister against the local filesystem.
type OS struct{}

// Stat resolves the resource kind via os.Stat.
func (OS) Stat(_ context.Context, path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindUnknown, err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}
	return KindFile, nil
}

// List enumerates a directory without re-sorting, preserving the order
// the directory yields. Symlinks are reported by their link target kind
// when resolvable, otherwise as files.
func (OS) List(_ context.Context, path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		kind := KindFile
		if d.IsDir() {
			kind = KindDirectory
		} else if d.Type()&fs.ModeSymlink != 0 {
			// DirEntry kinds are lstat-based; follow the link to report
			// what it points at.
			if info, err := os.Stat(filepath.Join(path, d.Name())); err == nil && info.IsDir() {
				kind = KindDirectory
			}
		}
		entries = append(entries, Entry{Name: d.Name(), Kind: kind})
	}
	return entries, nil
}

// Normalize converts a path into the canonical absolute form used as a
// resource identifier.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
