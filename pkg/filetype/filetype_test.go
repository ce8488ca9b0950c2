package filetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gowsfmt/pkg/filetype"
)

func TestIsBinary(t *testing.T) {
	t.Parallel()

	assert.True(t, filetype.IsBinary([]byte("PNG\x00\x00\x1a\n")))
	assert.False(t, filetype.IsBinary([]byte("plain text \t\r\n")))
	assert.False(t, filetype.IsBinary([]byte("\v\f form feed")))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "vendor/github.com/pkg/errors/errors.go", want: true},
		{path: "web/node_modules/react/index.js", want: true},
		{path: "internal/cli/root.go", want: false},
		{path: "README.md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, filetype.IsVendored(tt.path))
		})
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{name: "by extension", path: "main.go", content: "package main\n", want: "Go"},
		{name: "by filename", path: "Makefile", content: "all:\n\tgo build\n", want: "Makefile"},
		{name: "by shebang", path: "run", content: "#!/usr/bin/env python3\nprint(1)\n", want: "Python"},
		{name: "unknown", path: "notes", content: "just words\n", want: filetype.LanguageText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, filetype.Language(tt.path, []byte(tt.content)))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := filetype.Classify("vendor/lib/x.go", []byte("package x\n"))
	assert.True(t, c.Vendored)
	assert.False(t, c.Binary)
	assert.Equal(t, "Go", c.Language)

	c = filetype.Classify("api.pb.go", []byte("// Code generated by protoc-gen-go. DO NOT EDIT.\npackage api\n"))
	assert.True(t, c.Generated)

	c = filetype.Classify("image.bin", []byte{0x00, 0x01, 0x02})
	assert.True(t, c.Binary)
	assert.False(t, c.Generated)
	assert.Equal(t, filetype.LanguageText, c.Language)
}

func BenchmarkClassify(b *testing.B) {
	content := []byte("package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n")

	b.ResetTimer()
	for range b.N {
		filetype.Classify("cmd/app/main.go", content)
	}
}
