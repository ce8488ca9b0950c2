package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gowsfmt/pkg/filetype"
	"github.com/yaklabco/gowsfmt/pkg/fsutil"
)

// Discovery errors.
var (
	// ErrPathNotFound indicates an explicitly named path does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidPattern indicates an ignore glob or exclude expression
	// does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// vcsDirs are never descended into, even when hidden entries are included.
//
//nolint:gochecknoglobals // read-only lookup table
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
	".bzr": {},
}

// Discover finds the files to format. It returns a deterministically sorted
// list of absolute paths without duplicates.
//
// Explicitly named files are subject to the ignore and exclude patterns but
// not to the hidden and vendored filters. Named symlinks are skipped unless
// FollowSymlinks is set, in which case their target is returned. A named
// path that does not exist fails with ErrPathNotFound.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(opts.Ignore, opts.Exclude)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		matcher: m,
		seen:    make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Lstat(absPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, inputPath)
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		// A named link is formatted through its target, never replaced.
		if info.Mode()&fs.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				continue
			}

			absPath, err = filepath.EvalSymlinks(absPath)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, fmt.Errorf("%w: %s", ErrPathNotFound, inputPath)
				}
				return nil, fmt.Errorf("resolve %s: %w", inputPath, err)
			}

			if info, err = os.Stat(absPath); err != nil {
				return nil, fmt.Errorf("stat %s: %w", inputPath, err)
			}
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !w.matcher.skips(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)

	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	return absPath, nil
}

type walker struct {
	ctx     context.Context //nolint:containedctx // scoped to one Discover call
	opts    Options
	workDir string
	matcher *matcher
	files   []string
	seen    map[string]struct{}

	// visited holds resolved directories already walked, guarding against
	// symlink cycles.
	visited map[string]struct{}
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}

	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory with forward slashes.
// Paths outside the working directory keep their absolute form.
func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		relPath = path
	}

	return filepath.ToSlash(relPath)
}

func (w *walker) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.visited[real]; ok {
			return nil
		}
		w.visited[real] = struct{}{}

		// WalkDir does not descend into a root that is itself a link.
		if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			root = real
		}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		name := entry.Name()
		relPath := w.rel(path)

		if entry.IsDir() {
			if w.skipsDir(name, relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.opts.Hidden && strings.HasPrefix(name, ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path, name, relPath)
		}

		if !entry.Type().IsRegular() || fsutil.IsBackupPath(name) {
			return nil
		}

		if !w.matcher.skips(relPath, false) {
			w.add(path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

func (w *walker) skipsDir(name, relPath string) bool {
	if _, ok := vcsDirs[name]; ok {
		return true
	}

	if !w.opts.Hidden && strings.HasPrefix(name, ".") {
		return true
	}

	if w.opts.SkipVendored && filetype.IsVendored(relPath+"/") {
		return true
	}

	return w.matcher.skips(relPath, true)
}

// symlink handles a link found while walking. Links are skipped unless
// FollowSymlinks is set; followed file links contribute their target so the
// atomic rename never replaces the link itself.
func (w *walker) symlink(path, name, relPath string) error {
	if !w.opts.FollowSymlinks {
		return nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if info.IsDir() {
		if w.skipsDir(name, relPath) {
			return nil
		}
		return w.walk(target)
	}

	if !info.Mode().IsRegular() || fsutil.IsBackupPath(target) {
		return nil
	}

	if !w.matcher.skips(relPath, false) {
		w.add(target)
	}

	return nil
}

// matcher applies the ignore globs and exclude expressions to
// slash-separated relative paths.
type matcher struct {
	paths    []glob.Glob
	names    []glob.Glob
	excludes []*regexp.Regexp
}

func newMatcher(ignore, exclude []string) (*matcher, error) {
	m := &matcher{}

	for _, pattern := range ignore {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: ignore %q: %w", ErrInvalidPattern, pattern, err)
		}

		if strings.Contains(pattern, "/") {
			m.paths = append(m.paths, g)
		} else {
			m.names = append(m.names, g)
		}
	}

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude %q: %w", ErrInvalidPattern, expr, err)
		}
		m.excludes = append(m.excludes, re)
	}

	return m, nil
}

// skips reports whether relPath is ignored or excluded. Directories are
// also tested with a trailing slash so "build/**" prunes build itself.
func (m *matcher) skips(relPath string, isDir bool) bool {
	candidates := []string{relPath}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}

	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}

	for _, g := range m.names {
		if g.Match(base) {
			return true
		}
	}

	for _, candidate := range candidates {
		for _, g := range m.paths {
			if g.Match(candidate) {
				return true
			}
		}
		for _, re := range m.excludes {
			if re.MatchString(candidate) {
				return true
			}
		}
	}

	return false
}

// ValidatePatterns reports the first ignore glob or exclude expression that
// does not compile.
func ValidatePatterns(ignore, exclude []string) error {
	_, err := newMatcher(ignore, exclude)
	return err
}
