// Package fsutil reads and writes the files gowsfmt formats. It snapshots a
// file's state on read so a later write can detect concurrent edits, writes
// through a temp file and rename, and keeps optional sidecar backups.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/zeebo/blake3"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Hash is a BLAKE3-256 content digest.
type Hash [32]byte

// ContentHash returns the digest of content.
func ContentHash(content []byte) Hash {
	return blake3.Sum256(content)
}

// FileInfo is a snapshot of a file taken when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode holds the permission bits to restore on write.
	Mode os.FileMode

	// ModTime is the modification time at read.
	ModTime time.Time

	// Size is the file size in bytes at read.
	Size int64

	// Hash is the digest of the content at read.
	Hash Hash
}

// ReadFile reads path and snapshots its metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify("stat", path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify("read", path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    ContentHash(content),
	}, nil
}

// CheckModified reports whether the file changed since info was taken. A
// deleted file counts as modified. Size and modification time are compared
// first; when they match the content is re-hashed, since some file systems
// have coarse timestamps.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, classify("stat", info.Path, err)
	}

	if stat.Size() != info.Size || !stat.ModTime().Equal(info.ModTime) {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, classify("read", info.Path, err)
	}

	return ContentHash(content) != info.Hash, nil
}

func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
