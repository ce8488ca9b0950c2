package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowsfmt/pkg/diff"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("identical content", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, diff.Generate("a.txt", nil, nil))
		assert.Nil(t, diff.Generate("a.txt", []byte("x\r\n"), []byte("x\r\n")))
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", []byte("a \nb\n"), []byte("a\nb\n"))
		require.NotNil(t, d)

		assert.Equal(t, 1, d.Additions)
		assert.Equal(t, 1, d.Deletions)
		assert.Equal(t, "--- a/a.txt\n+++ b/a.txt\n@@ -1,2 +1,2 @@\n-a \n+a\n b\n", d.String())
	})

	t.Run("terminator change is a changed line", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", []byte("a\r\n"), []byte("a\n"))
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 1)

		lines := d.Hunks[0].Lines
		require.Len(t, lines, 2)
		assert.Equal(t, diff.LineRemove, lines[0].Kind)
		assert.Equal(t, whitespace.NewlineCRLF, lines[0].Terminator)
		assert.Equal(t, diff.LineAdd, lines[1].Kind)
		assert.Equal(t, whitespace.NewlineLF, lines[1].Terminator)
		assert.Equal(t, "--- a/a.txt\n+++ b/a.txt\n@@ -1,1 +1,1 @@\n-a\r\n+a\n", d.String())
	})

	t.Run("missing final newline", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", []byte("x"), []byte("x\n"))
		require.NotNil(t, d)

		assert.Equal(t, "--- a/a.txt\n+++ b/a.txt\n@@ -1,1 +1,1 @@\n-x\n\\ No newline at end of file\n+x\n", d.String())
	})

	t.Run("empty original", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", nil, []byte("\n"))
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 1)
		assert.Equal(t, "@@ -0,0 +1,1 @@", d.Hunks[0].Header())
	})

	t.Run("distant changes produce separate hunks", func(t *testing.T) {
		t.Parallel()

		var orig, mod []string
		for i := 1; i <= 10; i++ {
			line := fmt.Sprintf("l%d", i)
			orig = append(orig, line)
			if i == 1 || i == 10 {
				line += " "
			}
			mod = append(mod, line)
		}

		d := diff.Generate("a.txt",
			[]byte(strings.Join(orig, "\n")+"\n"),
			[]byte(strings.Join(mod, "\n")+"\n"))
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 2)

		assert.Equal(t, "@@ -1,4 +1,4 @@", d.Hunks[0].Header())
		assert.Equal(t, "@@ -7,4 +7,4 @@", d.Hunks[1].Header())
	})

	t.Run("nearby changes merge", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", []byte("a \nb\nc\nd \n"), []byte("a\nb\nc\nd\n"))
		require.NotNil(t, d)
		assert.Len(t, d.Hunks, 1)
		assert.Equal(t, 2, d.Additions)
	})

	t.Run("removed trailing empty lines", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("a.txt", []byte("a\n\n\n"), []byte("a\n"))
		require.NotNil(t, d)
		assert.Equal(t, 0, d.Additions)
		assert.Equal(t, 2, d.Deletions)
	})
}

func TestDiffHeaders(t *testing.T) {
	t.Parallel()

	d := diff.Generate("/abs/path.txt", []byte("a\t\n"), []byte("a\n"))
	require.NotNil(t, d)

	assert.Equal(t, "diff --git a/abs/path.txt b/abs/path.txt", d.GitHeader())
	assert.True(t, strings.HasPrefix(d.FullString(), d.GitHeader()+"\n--- a/abs/path.txt\n"))

	var nilDiff *diff.Diff
	assert.False(t, nilDiff.HasChanges())
	assert.Empty(t, nilDiff.String())
	assert.Empty(t, nilDiff.FullString())
	assert.Empty(t, nilDiff.GitHeader())
}

func TestLineVisible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line diff.Line
		want string
	}{
		{diff.Line{Content: "a\t ", Terminator: whitespace.NewlineCRLF}, "a→·␍␊"},
		{diff.Line{Content: "x  y  ", Terminator: whitespace.NewlineLF}, "x  y··␊"},
		{diff.Line{Content: "\v\f", Terminator: whitespace.NewlineCR}, "␋␌␍"},
		{diff.Line{Content: "end", Terminator: whitespace.NewlineNone}, "end"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.line.Visible(), "line %q", tt.line.Content)
	}
}
