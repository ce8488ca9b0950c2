package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowsfmt/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and applies mode", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "old\r\n", 0o600)

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new\n"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "created.txt")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "a", 0o644)
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("b"), 0o644))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "file.txt", entries[0].Name())
	})

	t.Run("missing directory fails without side effects", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "file.txt")
		err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o644)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := writeFixture(t, "keep", 0o644)
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("lost"), 0o644), context.Canceled)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(got))
	})
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("line with trailing space  \n"))
	f.Add([]byte("\r\r\n\n"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.txt")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, content, 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, len(content), len(got))
		assert.Equal(t, fsutil.ContentHash(content), fsutil.ContentHash(got))
	})
}
