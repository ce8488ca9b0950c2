// Package filetype classifies files before they are formatted. Binary files
// are never touched; vendored and generated files can be skipped on request.
package filetype

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// LanguageText is reported when no language can be determined.
const LanguageText = "Text"

// Class describes a file.
type Class struct {
	// Binary is set when the content looks like binary data.
	Binary bool

	// Vendored is set for third-party code paths such as vendor/ and
	// node_modules/.
	Vendored bool

	// Generated is set when the path or content marks the file as
	// machine-generated.
	Generated bool

	// Language is the detected language name, or LanguageText.
	Language string
}

// Classify inspects path and content.
func Classify(path string, content []byte) Class {
	binary := IsBinary(content)

	c := Class{
		Binary:   binary,
		Vendored: IsVendored(path),
		Language: LanguageText,
	}

	if binary {
		return c
	}

	c.Generated = enry.IsGenerated(filepath.ToSlash(path), content)
	c.Language = Language(path, content)

	return c
}

// IsBinary reports whether content looks like binary data.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// IsVendored reports whether path lies in a vendored directory. It needs
// only the path, so discovery can prune whole trees.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// Language guesses the language of a file from its name, then its
// extension, then its shebang line. The content classifier is not used.
func Language(path string, content []byte) string {
	base := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return lang
	}

	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return lang
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	return LanguageText
}
