package whitespace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid configuration")

// Option names, used in error messages and as flag and config keys.
const (
	OptionNewLineMarker         = "new-line-marker"
	OptionAddEOF                = "add-new-line-marker-at-end-of-file"
	OptionRemoveEOF             = "remove-new-line-marker-from-end-of-file"
	OptionNormalizeNewLines     = "normalize-new-line-markers"
	OptionTrailingWhitespace    = "remove-trailing-whitespace"
	OptionLeadingEmptyLines     = "remove-leading-empty-lines"
	OptionTrailingEmptyLines    = "remove-trailing-empty-lines"
	OptionReplaceTabs           = "replace-tabs-with-spaces"
	OptionNonStandardWhitespace = "normalize-non-standard-whitespace"
	OptionEmptyFiles            = "normalize-empty-files"
	OptionWhitespaceOnlyFiles   = "normalize-whitespace-only-files"
)

// TabsUntouched is the TabWidth that leaves tab characters alone.
const TabsUntouched = -1

// ConfigError reports an option combination that cannot be applied.
type ConfigError struct {
	// Options names the offending options.
	Options []string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Options) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", ErrInvalidConfig, e.Message, strings.Join(e.Options, ", "))
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NonStandardMode controls handling of '\v' and '\f'.
type NonStandardMode int

const (
	// NonStandardIgnore leaves '\v' and '\f' unchanged.
	NonStandardIgnore NonStandardMode = iota

	// NonStandardReplace replaces each occurrence with a single space.
	NonStandardReplace

	// NonStandardRemove deletes each occurrence.
	NonStandardRemove
)

// String returns the canonical configuration spelling of the mode.
func (m NonStandardMode) String() string {
	switch m {
	case NonStandardReplace:
		return "replace"
	case NonStandardRemove:
		return "remove"
	default:
		return "ignore"
	}
}

// NonStandardModeValues lists the accepted spellings.
func NonStandardModeValues() []string {
	return []string{"ignore", "replace", "remove"}
}

// ParseNonStandardMode parses a non-standard whitespace policy. An empty
// string means ignore.
func ParseNonStandardMode(s string) (NonStandardMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return NonStandardIgnore, nil
	case "replace", "replace-with-space":
		return NonStandardReplace, nil
	case "remove":
		return NonStandardRemove, nil
	default:
		return NonStandardIgnore, &ConfigError{
			Options: []string{OptionNonStandardWhitespace},
			Message: fmt.Sprintf("unknown mode %q (valid: %s)", s, strings.Join(NonStandardModeValues(), ", ")),
		}
	}
}

// TrivialFileMode controls empty and whitespace-only files.
type TrivialFileMode int

const (
	// TrivialFileIgnore leaves the file as it is.
	TrivialFileIgnore TrivialFileMode = iota

	// TrivialFileEmpty turns the file into a zero-byte file.
	TrivialFileEmpty

	// TrivialFileOneLine turns the file into a single line terminator.
	TrivialFileOneLine
)

// String returns the canonical configuration spelling of the mode.
func (m TrivialFileMode) String() string {
	switch m {
	case TrivialFileEmpty:
		return "empty"
	case TrivialFileOneLine:
		return "one-line"
	default:
		return "ignore"
	}
}

// TrivialFileModeValues lists the accepted spellings.
func TrivialFileModeValues() []string {
	return []string{"ignore", "empty", "one-line"}
}

// ParseTrivialFileMode parses an empty or whitespace-only file policy.
// option names the setting being parsed and is used in the error.
func ParseTrivialFileMode(option, s string) (TrivialFileMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return TrivialFileIgnore, nil
	case "empty":
		return TrivialFileEmpty, nil
	case "one-line", "oneline", "one_line":
		return TrivialFileOneLine, nil
	default:
		return TrivialFileIgnore, &ConfigError{
			Options: []string{option},
			Message: fmt.Sprintf("unknown mode %q (valid: %s)", s, strings.Join(TrivialFileModeValues(), ", ")),
		}
	}
}

// Options is an unvalidated formatting request. Use NewConfiguration to turn
// it into a Configuration. The zero value removes tabs; start from
// DefaultOptions instead.
type Options struct {
	// NewlineMode selects the terminator used when normalizing or adding
	// line terminators.
	NewlineMode NewlineMode

	// AddEOF appends a terminator to a file whose last line has none.
	AddEOF bool

	// RemoveEOF strips the terminator from the last line.
	RemoveEOF bool

	// NormalizeNewlines rewrites every terminator to the resolved one.
	NormalizeNewlines bool

	// RemoveTrailingWhitespace strips spaces, tabs, '\v' and '\f' from the
	// end of each line.
	RemoveTrailingWhitespace bool

	// RemoveLeadingEmptyLines drops empty lines at the start of the file.
	RemoveLeadingEmptyLines bool

	// RemoveTrailingEmptyLines drops empty lines at the end of the file.
	RemoveTrailingEmptyLines bool

	// TabWidth replaces each tab with that many spaces. Zero removes tabs;
	// a negative value leaves them alone.
	TabWidth int

	// NonStandard controls '\v' and '\f'.
	NonStandard NonStandardMode

	// EmptyFiles controls zero-byte files.
	EmptyFiles TrivialFileMode

	// WhitespaceOnlyFiles controls files with only whitespace bytes.
	WhitespaceOnlyFiles TrivialFileMode
}

// DefaultOptions returns a request that changes nothing.
func DefaultOptions() Options {
	return Options{TabWidth: TabsUntouched}
}

// Configuration is a validated, immutable set of formatting options.
// The zero value is not valid; use NewConfiguration or DefaultConfiguration.
type Configuration struct {
	newlineMode         NewlineMode
	addEOF              bool
	removeEOF           bool
	normalizeNewlines   bool
	trailingWhitespace  bool
	leadingEmptyLines   bool
	trailingEmptyLines  bool
	tabWidth            int
	nonStandard         NonStandardMode
	emptyFiles          TrivialFileMode
	whitespaceOnlyFiles TrivialFileMode
}

// DefaultConfiguration returns the configuration that leaves every file
// unchanged except for canonicalizing the empty-file policy.
func DefaultConfiguration() Configuration {
	cfg, err := NewConfiguration(DefaultOptions())
	if err != nil {
		panic(err)
	}

	return cfg
}

// NewConfiguration validates opts and resolves implied settings.
//
// AddEOF and RemoveEOF cannot both be set. RemoveEOF implies
// RemoveTrailingEmptyLines, since a trailing empty line would otherwise
// regain its terminator on the next run. WhitespaceOnlyFiles=Empty cannot be
// combined with EmptyFiles=OneLine, and forces EmptyFiles=Empty otherwise.
// EmptyFiles Ignore and Empty are equivalent and both canonicalize to Empty.
func NewConfiguration(opts Options) (Configuration, error) {
	if err := checkRanges(opts); err != nil {
		return Configuration{}, err
	}

	if opts.AddEOF && opts.RemoveEOF {
		return Configuration{}, &ConfigError{
			Options: []string{OptionAddEOF, OptionRemoveEOF},
			Message: "cannot both add and remove the new line marker at the end of the file",
		}
	}

	if opts.WhitespaceOnlyFiles == TrivialFileEmpty && opts.EmptyFiles == TrivialFileOneLine {
		return Configuration{}, &ConfigError{
			Options: []string{OptionWhitespaceOnlyFiles, OptionEmptyFiles},
			Message: "whitespace-only files cannot become empty while empty files become one line",
		}
	}

	cfg := Configuration{
		newlineMode:         opts.NewlineMode,
		addEOF:              opts.AddEOF,
		removeEOF:           opts.RemoveEOF,
		normalizeNewlines:   opts.NormalizeNewlines,
		trailingWhitespace:  opts.RemoveTrailingWhitespace,
		leadingEmptyLines:   opts.RemoveLeadingEmptyLines,
		trailingEmptyLines:  opts.RemoveTrailingEmptyLines || opts.RemoveEOF,
		tabWidth:            opts.TabWidth,
		nonStandard:         opts.NonStandard,
		emptyFiles:          opts.EmptyFiles,
		whitespaceOnlyFiles: opts.WhitespaceOnlyFiles,
	}

	if cfg.emptyFiles == TrivialFileIgnore {
		cfg.emptyFiles = TrivialFileEmpty
	}

	if cfg.tabWidth < 0 {
		cfg.tabWidth = TabsUntouched
	}

	return cfg, nil
}

func checkRanges(opts Options) error {
	if opts.NewlineMode < NewlineModeAuto || opts.NewlineMode > NewlineModeWindows {
		return &ConfigError{
			Options: []string{OptionNewLineMarker},
			Message: fmt.Sprintf("unknown new line marker mode %d", opts.NewlineMode),
		}
	}

	if opts.NonStandard < NonStandardIgnore || opts.NonStandard > NonStandardRemove {
		return &ConfigError{
			Options: []string{OptionNonStandardWhitespace},
			Message: fmt.Sprintf("unknown mode %d", opts.NonStandard),
		}
	}

	trivial := []struct {
		option string
		mode   TrivialFileMode
	}{
		{OptionEmptyFiles, opts.EmptyFiles},
		{OptionWhitespaceOnlyFiles, opts.WhitespaceOnlyFiles},
	}
	for _, tf := range trivial {
		if tf.mode < TrivialFileIgnore || tf.mode > TrivialFileOneLine {
			return &ConfigError{
				Options: []string{tf.option},
				Message: fmt.Sprintf("unknown mode %d", tf.mode),
			}
		}
	}

	return nil
}

// NewlineMode returns the terminator policy.
func (c Configuration) NewlineMode() NewlineMode { return c.newlineMode }

// AddEOF reports whether a missing final terminator is added.
func (c Configuration) AddEOF() bool { return c.addEOF }

// RemoveEOF reports whether the final terminator is removed.
func (c Configuration) RemoveEOF() bool { return c.removeEOF }

// NormalizeNewlines reports whether terminators are rewritten.
func (c Configuration) NormalizeNewlines() bool { return c.normalizeNewlines }

// RemoveTrailingWhitespace reports whether trailing whitespace is stripped.
func (c Configuration) RemoveTrailingWhitespace() bool { return c.trailingWhitespace }

// RemoveLeadingEmptyLines reports whether leading empty lines are dropped.
func (c Configuration) RemoveLeadingEmptyLines() bool { return c.leadingEmptyLines }

// RemoveTrailingEmptyLines reports whether trailing empty lines are
// dropped. It is always true when RemoveEOF is.
func (c Configuration) RemoveTrailingEmptyLines() bool { return c.trailingEmptyLines }

// TabWidth returns the tab replacement width, or TabsUntouched.
func (c Configuration) TabWidth() int { return c.tabWidth }

// NonStandard returns the '\v' and '\f' policy.
func (c Configuration) NonStandard() NonStandardMode { return c.nonStandard }

// EmptyFiles returns the empty-file policy. It is never TrivialFileIgnore.
func (c Configuration) EmptyFiles() TrivialFileMode { return c.emptyFiles }

// WhitespaceOnlyFiles returns the whitespace-only file policy.
func (c Configuration) WhitespaceOnlyFiles() TrivialFileMode { return c.whitespaceOnlyFiles }

// Options returns the resolved settings as an Options value. Passing it back
// to NewConfiguration yields an equal Configuration.
func (c Configuration) Options() Options {
	return Options{
		NewlineMode:              c.newlineMode,
		AddEOF:                   c.addEOF,
		RemoveEOF:                c.removeEOF,
		NormalizeNewlines:        c.normalizeNewlines,
		RemoveTrailingWhitespace: c.trailingWhitespace,
		RemoveLeadingEmptyLines:  c.leadingEmptyLines,
		RemoveTrailingEmptyLines: c.trailingEmptyLines,
		TabWidth:                 c.tabWidth,
		NonStandard:              c.nonStandard,
		EmptyFiles:               c.emptyFiles,
		WhitespaceOnlyFiles:      c.whitespaceOnlyFiles,
	}
}

// modifiesLines reports whether any line-level stage is enabled.
func (c Configuration) modifiesLines() bool {
	return c.tabWidth >= 0 ||
		c.nonStandard != NonStandardIgnore ||
		c.trailingWhitespace ||
		c.leadingEmptyLines ||
		c.trailingEmptyLines ||
		c.normalizeNewlines ||
		c.addEOF ||
		c.removeEOF
}
