package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may not emit ANSI codes without a TTY, so only check that
	// every style renders its input.
	for _, rendered := range []string{
		styles.Error.Render("x"),
		styles.FilePath.Render("x"),
		styles.Kind.Render("x"),
		styles.Marker.Render("x"),
		styles.DiffAdd.Render("x"),
		styles.DiffRemove.Render("x"),
		styles.Success.Render("x"),
		styles.TableSeparator.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
	assert.Equal(t, "test", styles.DiffAdd.Render("test"))
}

func TestNormalizeColorMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", pretty.ColorAuto, true},
		{"auto", pretty.ColorAuto, true},
		{"always", pretty.ColorAlways, true},
		{"ON", pretty.ColorAlways, true},
		{"never", pretty.ColorNever, true},
		{"off", pretty.ColorNever, true},
		{"sometimes", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := pretty.NormalizeColorMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.True(t, pretty.IsColorEnabled("on", &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("off", os.Stdout))
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestIsColorEnabled_UnknownModeFallsBackToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}
