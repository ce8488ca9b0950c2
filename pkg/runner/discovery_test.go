package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowsfmt/pkg/runner"
)

// writeTree creates files under dir, each holding its own name.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f+"\n"), 0o644))
	}
}

// relAll converts discovered paths back to slash-separated relative paths.
func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}

	return rel
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md", "src/main.go", "src/util/strings.go", "notes.txt")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"notes.txt",
		"readme.md",
		"src/main.go",
		"src/util/strings.go",
	}, relAll(t, dir, files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), f)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.txt", "b.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"a.txt"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"does-not-exist"},
		WorkingDir: dir,
	})
	require.ErrorIs(t, err, runner.ErrPathNotFound)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.txt", "sub/b.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.txt", "sub", "./sub/b.txt"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, relAll(t, dir, files))
}

func TestDiscover_HiddenEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"visible.txt",
		".hidden.txt",
		".config/settings.txt",
		".git/config",
		".hg/hgrc",
	)

	tests := []struct {
		name   string
		hidden bool
		want   []string
	}{
		{
			name: "hidden skipped by default",
			want: []string{"visible.txt"},
		},
		{
			name:   "hidden included on request",
			hidden: true,
			want:   []string{".config/settings.txt", ".hidden.txt", "visible.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Hidden:     tt.hidden,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_ExplicitHiddenFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, ".editorconfig")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".editorconfig"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".editorconfig"}, relAll(t, dir, files))
}

func TestDiscover_IgnoreGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"main.go",
		"app.min.js",
		"web/lib.min.js",
		"web/app.js",
		"build/out.txt",
		"build/nested/deep.txt",
		"docs/a.md",
	)

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{
			name:   "base name pattern matches at any depth",
			ignore: []string{"*.min.js"},
			want:   []string{"build/nested/deep.txt", "build/out.txt", "docs/a.md", "main.go", "web/app.js"},
		},
		{
			name:   "directory pattern prunes the tree",
			ignore: []string{"build/**"},
			want:   []string{"app.min.js", "docs/a.md", "main.go", "web/app.js", "web/lib.min.js"},
		},
		{
			name:   "single star does not cross directories",
			ignore: []string{"web/*"},
			want:   []string{"app.min.js", "build/nested/deep.txt", "build/out.txt", "docs/a.md", "main.go"},
		},
		{
			name:   "alternatives",
			ignore: []string{"*.{go,md}"},
			want:   []string{"app.min.js", "build/nested/deep.txt", "build/out.txt", "web/app.js", "web/lib.min.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Ignore:     tt.ignore,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_ExcludeExpressions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "keep.txt", "gen/a_gen.txt", "src/b_test.go", "src/b.go")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Exclude:    []string{`^gen/`, `_test\.go$`},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt", "src/b.go"}, relAll(t, dir, files))
}

func TestDiscover_ExcludeAppliesToExplicitFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.txt", "b.log")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"a.txt", "b.log"},
		WorkingDir: dir,
		Ignore:     []string{"*.log"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relAll(t, dir, files))
}

func TestDiscover_InvalidPatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		ignore  []string
		exclude []string
	}{
		{name: "unclosed glob class", ignore: []string{"[abc"}},
		{name: "bad regular expression", exclude: []string{"(unclosed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Ignore:     tt.ignore,
				Exclude:    tt.exclude,
			})
			require.ErrorIs(t, err, runner.ErrInvalidPattern)
			require.ErrorIs(t, runner.ValidatePatterns(tt.ignore, tt.exclude), runner.ErrInvalidPattern)
		})
	}

	assert.NoError(t, runner.ValidatePatterns([]string{"**/*.txt"}, []string{`\.bak$`}))
}

func TestDiscover_SkipVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "main.go", "vendor/dep/dep.go", "node_modules/pkg/index.js")

	all, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		SkipVendored: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, relAll(t, dir, files))
}

func TestDiscover_SkipsBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.txt", "a.txt.gowsfmt.bak")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relAll(t, dir, files))
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, "real.txt")
	writeTree(t, outside, "linked/inner.txt", "target.txt")

	if err := os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "linked"), filepath.Join(dir, "linkdir")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "real.txt")}, files)

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)

	realOutside, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "real.txt"),
		filepath.Join(realOutside, "target.txt"),
		filepath.Join(realOutside, "linked", "inner.txt"),
	}, files)
}

func TestDiscover_ExplicitSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "target.txt", "sub/inner.txt")

	if err := os.Symlink("target.txt", filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink("sub", filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink("missing.txt", filepath.Join(dir, "broken.txt")))

	realDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		paths   []string
		follow  bool
		want    []string
		wantErr error
	}{
		{name: "file link skipped", paths: []string{"link.txt"}},
		{name: "dir link skipped", paths: []string{"linkdir"}},
		{name: "broken link skipped", paths: []string{"broken.txt"}},
		{
			name:   "file link resolves to target",
			paths:  []string{"link.txt"},
			follow: true,
			want:   []string{filepath.Join(realDir, "target.txt")},
		},
		{
			name:   "dir link walks target",
			paths:  []string{"linkdir"},
			follow: true,
			want:   []string{filepath.Join(realDir, "sub", "inner.txt")},
		},
		{
			name:    "broken link followed",
			paths:   []string{"broken.txt"},
			follow:  true,
			wantErr: runner.ErrPathNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:     dir,
				Paths:          tt.paths,
				FollowSymlinks: tt.follow,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, files)
		})
	}
}

func TestDiscover_SymlinkCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "sub/a.txt")

	if err := os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "sub", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
