package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar writes the backup next to the original with
	// BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to sidecar backup file names.
const BackupSuffix = ".gowsfmt.bak"

// ParseBackupMode parses a backup mode. An empty string means sidecar.
func ParseBackupMode(s string) (BackupMode, error) {
	switch BackupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackupModeSidecar:
		return BackupModeSidecar, nil
	case BackupModeNone:
		return BackupModeNone, nil
	default:
		return "", fmt.Errorf("unknown backup mode %q (valid: sidecar, none)", s)
	}
}

// BackupConfig controls backup behavior.
type BackupConfig struct {
	// Enabled indicates whether backups should be created.
	Enabled bool

	// Mode specifies how backups are stored.
	Mode BackupMode
}

// BackupPath returns where the backup of path lives, or "" when mode stores
// no backups.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}

	return path + BackupSuffix
}

// IsBackupPath reports whether path names a sidecar backup.
func IsBackupPath(path string) bool {
	return strings.HasSuffix(path, BackupSuffix)
}

// CreateBackup saves the original content of a file before it is rewritten.
// An existing backup is never overwritten, so repeated runs keep the oldest
// content. It reports whether a backup was written.
func CreateBackup(ctx context.Context, info *FileInfo, content []byte, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}

	if info == nil {
		return false, ErrNilFileInfo
	}

	backupPath := BackupPath(info.Path, cfg.Mode)

	_, err := os.Lstat(backupPath)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, classify("stat backup", backupPath, err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
