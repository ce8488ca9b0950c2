package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths. Missing files
// are empty strings.
type ConfigPaths struct {
	// System is the system-wide config (e.g., /etc/gowsfmt/config.yaml).
	System string

	// User is the user-level config (e.g., ~/.config/gowsfmt/config.yaml).
	User string

	// Project is the nearest project config (e.g., ./.gowsfmt.yml).
	Project string

	// Explicit is a config path provided via --config.
	Explicit string
}

// projectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".gowsfmt.yml",
	".gowsfmt.yaml",
	".gowsfmt.toml",
	"gowsfmt.yml",
	"gowsfmt.yaml",
	"gowsfmt.toml",
}

// dirConfigFiles are the names looked up in the user and system config
// directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in the standard locations:
//   - System config in /etc/gowsfmt (%ProgramData%\gowsfmt on Windows)
//   - User config in $XDG_CONFIG_HOME/gowsfmt
//   - Project config by searching upward from workDir
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findConfigInDir(SystemConfigDir()),
		User:    findConfigInDir(UserConfigDir()),
		Project: project,
	}, nil
}

// SystemConfigDir returns the directory searched for the system config.
func SystemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "gowsfmt")
	}

	return "/etc/gowsfmt"
}

// UserConfigDir returns the directory searched for the user config, or ""
// when no home directory is known.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "gowsfmt")
}

func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}

	for _, name := range dirConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory or the filesystem root.
// It returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// Without a home directory there is no home boundary.
	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(currentDir) || (homeDir != "" && currentDir == homeDir) {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsTOMLConfig returns true if the path names a TOML config file. Every
// other config file is read as YAML.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}
