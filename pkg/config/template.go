package config

import (
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its documentation. Otherwise only the
	// commonly changed options are written.
	Full bool

	// Format is "yaml" or "toml".
	Format string
}

type templateOption struct {
	key     string
	value   string
	comment string
	minimal bool
}

// whitespaceTemplate lists the whitespace options in the order they appear
// in generated files. Values are written in YAML syntax; TOML needs quoting
// of strings only.
var whitespaceTemplate = []templateOption{
	{"new_line_marker", "auto", "Line terminator: auto (most common in each file), linux, macos or windows", true},
	{"normalize_new_line_markers", "true", "Rewrite every line terminator to new_line_marker", true},
	{"add_new_line_marker_at_end_of_file", "true", "Terminate the last line", true},
	{"remove_new_line_marker_from_end_of_file", "false", "Strip the terminator from the last line (implies remove_trailing_empty_lines)", false},
	{"remove_trailing_whitespace", "true", "Strip spaces, tabs, \\v and \\f at the end of each line", true},
	{"remove_leading_empty_lines", "false", "Drop empty lines at the start of the file", false},
	{"remove_trailing_empty_lines", "true", "Drop empty lines at the end of the file", true},
	{"replace_tabs_with_spaces", "-1", "Replace each tab with N spaces; 0 removes tabs, negative leaves them", false},
	{"normalize_non_standard_whitespace", "ignore", "Vertical tab and form feed: ignore, replace (with a space) or remove", false},
	{"normalize_empty_files", "ignore", "Empty files: ignore, empty or one-line", false},
	{"normalize_whitespace_only_files", "ignore", "Files with only whitespace: ignore, empty or one-line", false},
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", "yaml", "yml":
		return []byte(yamlTemplate(opts.Full)), nil
	case "toml":
		return []byte(tomlTemplate(opts.Full)), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q (valid: yaml, toml)", opts.Format)
	}
}

func yamlTemplate(full bool) string {
	var b strings.Builder

	b.WriteString("# gowsfmt configuration\n")
	b.WriteString("# See: https://github.com/yaklabco/gowsfmt\n\n")

	b.WriteString("whitespace:\n")
	for _, opt := range whitespaceTemplate {
		if !full && !opt.minimal {
			continue
		}
		fmt.Fprintf(&b, "  # %s\n  %s: %s\n", opt.comment, opt.key, opt.value)
	}

	b.WriteString(`
# Glob patterns for paths to skip
# ignore:
#   - "**/*.min.js"
#   - "testdata/**"
`)

	if full {
		b.WriteString(`
# Regular expressions matched against slash-separated paths
# exclude:
#   - "^third_party/"

# Descend into symlinked directories and format symlinked files
# follow_symlinks: false

# Include dot files and dot directories
# hidden: false

# Skip vendor/, node_modules/ and similar trees
# skip_vendored: false

# Skip files marked as generated
# skip_generated: false

# Number of parallel workers (0 = one per CPU)
# jobs: 0

# Keep a copy of each rewritten file next to it
# backups:
#   enabled: false
#   mode: sidecar
`)
	}

	return b.String()
}

func tomlTemplate(full bool) string {
	var b strings.Builder

	b.WriteString("# gowsfmt configuration\n")
	b.WriteString("# See: https://github.com/yaklabco/gowsfmt\n\n")

	if full {
		b.WriteString(`# Glob patterns for paths to skip
# ignore = ["**/*.min.js", "testdata/**"]

# Regular expressions matched against slash-separated paths
# exclude = ["^third_party/"]

# follow_symlinks = false
# hidden = false
# skip_vendored = false
# skip_generated = false
# jobs = 0

`)
	} else {
		b.WriteString("# ignore = [\"testdata/**\"]\n\n")
	}

	b.WriteString("[whitespace]\n")
	for _, opt := range whitespaceTemplate {
		if !full && !opt.minimal {
			continue
		}

		value := opt.value
		if value != "true" && value != "false" && !isNumber(value) {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&b, "# %s\n%s = %s\n", opt.comment, opt.key, value)
	}

	if full {
		b.WriteString("\n[backups]\nenabled = false\nmode = \"sidecar\"\n")
	}

	return b.String()
}

func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
