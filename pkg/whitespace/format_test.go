package whitespace_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

func configure(t testing.TB, mutate func(*whitespace.Options)) whitespace.Configuration {
	t.Helper()

	opts := whitespace.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}

	cfg, err := whitespace.NewConfiguration(opts)
	require.NoError(t, err)

	return cfg
}

func corpus() []string {
	return []string{
		"",
		"\n",
		"\r",
		"\r\n",
		"\r\n\r\n",
		"   ",
		" \t\v\f",
		"\n\t \x0B \x0C \n  ",
		"x",
		"hello",
		"hello\n",
		"hello  ",
		"a \nb\t\n\n",
		"a\r\nb\nc\r",
		"\n\n\nfirst\nsecond\n\n\n",
		"hello\r\n\rworld  ",
		"hello\r\n\rworld  \n",
		"hello\r\n\rworld  \r\n",
		"hello\r\n\rworld\r\n\n\n\n\n\n",
		"hello \t  \r\n \t  \rworld   ",
		"hello world   \x0C  \n\n \x0B \n",
		"\x0B\x0Chello\t ",
		"\thello\t\tworld\t\n",
		"a\n  ",
		"a\r\n\t",
		"  \n\n  x  \n\n  ",
		"\r\r\n\n\r",
		"\n\r\r\r\n\r\n",
		"trailing\r",
		"\x00binary\xffbytes\n",
	}
}

func configGrid() map[string]whitespace.Options {
	grid := make(map[string]whitespace.Options)

	newlineModes := []whitespace.NewlineMode{
		whitespace.NewlineModeAuto,
		whitespace.NewlineModeLinux,
		whitespace.NewlineModeMac,
		whitespace.NewlineModeWindows,
	}
	trivial := []whitespace.TrivialFileMode{
		whitespace.TrivialFileIgnore,
		whitespace.TrivialFileEmpty,
		whitespace.TrivialFileOneLine,
	}
	eof := []struct{ add, remove bool }{{false, false}, {true, false}, {false, true}}

	for _, nm := range newlineModes {
		for _, empty := range trivial {
			for _, wsOnly := range trivial {
				for _, e := range eof {
					for _, everything := range []bool{false, true} {
						opts := whitespace.DefaultOptions()
						opts.NewlineMode = nm
						opts.EmptyFiles = empty
						opts.WhitespaceOnlyFiles = wsOnly
						opts.AddEOF = e.add
						opts.RemoveEOF = e.remove
						if everything {
							opts.NormalizeNewlines = true
							opts.RemoveTrailingWhitespace = true
							opts.RemoveLeadingEmptyLines = true
							opts.RemoveTrailingEmptyLines = true
							opts.TabWidth = 2
							opts.NonStandard = whitespace.NonStandardReplace
						}

						name := fmt.Sprintf("%s/empty=%s/ws=%s/add=%t/remove=%t/all=%t",
							nm, empty, wsOnly, e.add, e.remove, everything)
						grid[name] = opts
					}
				}
			}
		}
	}

	for _, width := range []int{0, 4} {
		opts := whitespace.DefaultOptions()
		opts.TabWidth = width
		opts.NonStandard = whitespace.NonStandardRemove
		opts.RemoveTrailingWhitespace = true
		grid[fmt.Sprintf("tabs=%d/non-standard=remove", width)] = opts
	}

	return grid
}

func TestFormatIsIdempotent(t *testing.T) {
	t.Parallel()

	for name, opts := range configGrid() {
		cfg, err := whitespace.NewConfiguration(opts)
		if err != nil {
			continue
		}

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, input := range corpus() {
				first := whitespace.Format(cfg, []byte(input))
				second := whitespace.Format(cfg, first.Bytes)

				assert.False(t, second.Changed, "input %q: %q became %q", input, first.Bytes, second.Bytes)
				assert.Empty(t, second.Events, "input %q", input)
			}
		})
	}
}

func TestFormatChangedMatchesBytes(t *testing.T) {
	t.Parallel()

	for name, opts := range configGrid() {
		cfg, err := whitespace.NewConfiguration(opts)
		if err != nil {
			continue
		}

		for _, input := range corpus() {
			out := whitespace.Format(cfg, []byte(input))

			assert.Equal(t, input != string(out.Bytes), out.Changed, "%s: input %q", name, input)
			if out.Changed {
				assert.NotEmpty(t, out.Events, "%s: input %q", name, input)
			} else {
				assert.Empty(t, out.Events, "%s: input %q", name, input)
			}
		}
	}
}

func TestFormatDefaultConfigurationChangesNothing(t *testing.T) {
	t.Parallel()

	cfg := whitespace.DefaultConfiguration()
	for _, input := range corpus() {
		out := whitespace.Format(cfg, []byte(input))
		assert.False(t, out.Changed, "input %q", input)
		assert.Equal(t, input, string(out.Bytes))
	}
}

func TestFormatScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		mutate  func(*whitespace.Options)
		want    string
		changed bool
	}{
		{
			// Tabs are expanded before trailing whitespace is trimmed, so the
			// spaces that replaced the tab are trimmed as well.
			name:  "tabs trailing whitespace and trailing empty lines",
			input: "a \nb\t\n\n",
			mutate: func(o *whitespace.Options) {
				o.RemoveTrailingWhitespace = true
				o.RemoveTrailingEmptyLines = true
				o.NewlineMode = whitespace.NewlineModeLinux
				o.TabWidth = 2
			},
			want:    "a\nb\n",
			changed: true,
		},
		{
			name:    "add missing eof marker",
			input:   "x",
			mutate:  func(o *whitespace.Options) { o.AddEOF = true },
			want:    "x\n",
			changed: true,
		},
		{
			name:  "whitespace-only file becomes one line",
			input: "\r\n\r\n",
			mutate: func(o *whitespace.Options) {
				o.WhitespaceOnlyFiles = whitespace.TrivialFileOneLine
				o.NewlineMode = whitespace.NewlineModeLinux
			},
			want:    "\n",
			changed: true,
		},
		{
			name:   "empty file stays empty",
			input:  "",
			mutate: func(o *whitespace.Options) { o.EmptyFiles = whitespace.TrivialFileEmpty },
			want:   "",
		},
		{
			name:  "mixed terminators normalize to the majority",
			input: "a\r\nb\nc\r",
			mutate: func(o *whitespace.Options) {
				o.NormalizeNewlines = true
				o.NewlineMode = whitespace.NewlineModeAuto
			},
			want:    "a\nb\nc\n",
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := whitespace.Format(configure(t, tt.mutate), []byte(tt.input))
			assert.Equal(t, tt.want, string(out.Bytes))
			assert.Equal(t, tt.changed, out.Changed)
		})
	}
}

func TestFormatEndOfFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		mode   whitespace.NewlineMode
		add    bool
		remove bool
		want   string
	}{
		{name: "add auto uses majority", input: "hello\r\n\rworld  ", mode: whitespace.NewlineModeAuto, add: true, want: "hello\r\n\rworld  \r\n"},
		{name: "add linux", input: "hello\r\n\rworld  ", mode: whitespace.NewlineModeLinux, add: true, want: "hello\r\n\rworld  \n"},
		{name: "add mac", input: "hello\r\n\rworld  ", mode: whitespace.NewlineModeMac, add: true, want: "hello\r\n\rworld  \r"},
		{name: "add windows", input: "hello\r\n\rworld  ", mode: whitespace.NewlineModeWindows, add: true, want: "hello\r\n\rworld  \r\n"},
		{name: "add keeps existing marker", input: "hello\r", mode: whitespace.NewlineModeLinux, add: true, want: "hello\r"},
		{name: "remove", input: "hello\r\n\rworld  \n", remove: true, want: "hello\r\n\rworld  "},
		{name: "remove without marker", input: "hello", remove: true, want: "hello"},
		{name: "remove on empty file", input: "", remove: true, want: ""},
		{name: "remove drops trailing empty lines", input: "hello  \n\r\n\r", remove: true, want: "hello  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) {
				o.NewlineMode = tt.mode
				o.AddEOF = tt.add
				o.RemoveEOF = tt.remove
			})

			out := whitespace.Format(cfg, []byte(tt.input))
			assert.Equal(t, tt.want, string(out.Bytes))
		})
	}
}

func TestFormatAddEOFEvent(t *testing.T) {
	t.Parallel()

	cfg := configure(t, func(o *whitespace.Options) { o.AddEOF = true })
	out := whitespace.Format(cfg, []byte("hello\r\n\rworld  "))

	require.Len(t, out.Events, 1)
	assert.Equal(t, whitespace.ChangeEvent{Line: 3, Kind: whitespace.EndOfFileMarkerAdded}, out.Events[0])
	assert.Equal(t, "line 3: New line marker added to the end of the file.", out.Events[0].Format(false))
	assert.Equal(t, "line 3: New line marker would be added to the end of the file.", out.Events[0].Format(true))
}

func TestFormatNormalizeNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode whitespace.NewlineMode
		want string
	}{
		{mode: whitespace.NewlineModeAuto, want: "hello\r\n\r\nworld  \r\n"},
		{mode: whitespace.NewlineModeLinux, want: "hello\n\nworld  \n"},
		{mode: whitespace.NewlineModeMac, want: "hello\r\rworld  \r"},
		{mode: whitespace.NewlineModeWindows, want: "hello\r\n\r\nworld  \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) {
				o.NormalizeNewlines = true
				o.NewlineMode = tt.mode
			})

			out := whitespace.Format(cfg, []byte("hello\r\n\rworld  \r\n"))
			assert.Equal(t, tt.want, string(out.Bytes))
		})
	}
}

func TestFormatNormalizeNewlinesEvents(t *testing.T) {
	t.Parallel()

	cfg := configure(t, func(o *whitespace.Options) {
		o.NormalizeNewlines = true
		o.NewlineMode = whitespace.NewlineModeLinux
	})

	out := whitespace.Format(cfg, []byte("a\r\nb\nc\r"))
	require.Len(t, out.Events, 2)

	assert.Equal(t, 1, out.Events[0].Line)
	assert.Equal(t, whitespace.NewlineMarkerNormalized, out.Events[0].Kind)
	assert.Equal(t, `'\r\n' -> '\n'`, out.Events[0].Detail)
	assert.Equal(t, 3, out.Events[1].Line)
	assert.Equal(t, `'\r' -> '\n'`, out.Events[1].Detail)
}

func TestFormatTrailingWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		trailingEmpty bool
		want          string
		events        int
	}{
		{name: "unterminated line", input: "hello world   ", want: "hello world", events: 1},
		{name: "mixed terminators", input: "hello \t  \r\n \t  \rworld   ", want: "hello\r\n\rworld", events: 3},
		{name: "non-standard whitespace", input: "hello world   \x0C  \n\n \x0B \n", want: "hello world\n\n\n", events: 2},
		{name: "with trailing empty lines", input: "hello world   \n\n   \n", trailingEmpty: true, want: "hello world\n", events: 3},
		{name: "clean input", input: "hello\nworld\n", want: "hello\nworld\n"},
		{name: "whitespace-only last line keeps previous terminator", input: "a\n \t", want: "a\n", events: 1},
		{name: "non-standard last line keeps CRLF", input: "a\r\n\v", want: "a\r\n", events: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) {
				o.RemoveTrailingWhitespace = true
				o.RemoveTrailingEmptyLines = tt.trailingEmpty
			})

			out := whitespace.Format(cfg, []byte(tt.input))
			assert.Equal(t, tt.want, string(out.Bytes))
			assert.Len(t, out.Events, tt.events)
		})
	}
}

func TestFormatEmptyLines(t *testing.T) {
	t.Parallel()

	t.Run("trailing empty lines are aggregated into one event", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, func(o *whitespace.Options) { o.RemoveTrailingEmptyLines = true })
		out := whitespace.Format(cfg, []byte("hello\r\n\rworld\r\n\n\n\n\n\n"))

		assert.Equal(t, "hello\r\n\rworld\r\n", string(out.Bytes))
		require.Len(t, out.Events, 1)
		assert.Equal(t, whitespace.ChangeEvent{Line: 4, Kind: whitespace.TrailingEmptyLineRemoved, Detail: "5"}, out.Events[0])
	})

	t.Run("leading empty lines", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, func(o *whitespace.Options) { o.RemoveLeadingEmptyLines = true })
		out := whitespace.Format(cfg, []byte("\n\r\n\rfirst\n\nlast"))

		assert.Equal(t, "first\n\nlast", string(out.Bytes))
		require.Len(t, out.Events, 1)
		assert.Equal(t, whitespace.ChangeEvent{Line: 1, Kind: whitespace.LeadingEmptyLineRemoved, Detail: "3"}, out.Events[0])
	})

	t.Run("interior empty lines are kept", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, func(o *whitespace.Options) {
			o.RemoveLeadingEmptyLines = true
			o.RemoveTrailingEmptyLines = true
		})
		out := whitespace.Format(cfg, []byte("a\n\n\nb\n"))

		assert.False(t, out.Changed)
	})

	t.Run("line made blank by trimming counts as empty", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, func(o *whitespace.Options) {
			o.RemoveTrailingWhitespace = true
			o.RemoveTrailingEmptyLines = true
		})
		out := whitespace.Format(cfg, []byte("a\n \t\n\v\n"))

		assert.Equal(t, "a\n", string(out.Bytes))
	})
}

func TestFormatWhitespaceOnlyFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		mode    whitespace.TrivialFileMode
		newline whitespace.NewlineMode
		want    string
		events  int
	}{
		{name: "empty", input: "\n\t \x0B \x0C \n  ", mode: whitespace.TrivialFileEmpty, want: "", events: 1},
		{name: "ignore", input: "\n\t \x0B \x0C \n  ", mode: whitespace.TrivialFileIgnore, want: "\n\t \x0B \x0C \n  "},
		{name: "one line", input: "\n\t \x0B \x0C \n  ", mode: whitespace.TrivialFileOneLine, want: "\n", events: 1},
		{name: "already one line lf", input: "\n", mode: whitespace.TrivialFileOneLine, want: "\n"},
		{name: "already one line crlf", input: "\r\n", mode: whitespace.TrivialFileOneLine, want: "\r\n"},
		{name: "crlf to linux", input: "\r\n", mode: whitespace.TrivialFileOneLine, newline: whitespace.NewlineModeLinux, want: "\n", events: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) {
				o.WhitespaceOnlyFiles = tt.mode
				o.NewlineMode = tt.newline
			})

			out := whitespace.Format(cfg, []byte(tt.input))
			assert.Equal(t, tt.want, string(out.Bytes))
			require.Len(t, out.Events, tt.events)
			if tt.events > 0 {
				assert.Equal(t, whitespace.FileLevel, out.Events[0].Line)
				assert.Equal(t, whitespace.WhitespaceOnlyFileNormalized, out.Events[0].Kind)
			}
		})
	}

	t.Run("ignore skips line stages", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, func(o *whitespace.Options) {
			o.RemoveTrailingWhitespace = true
			o.RemoveTrailingEmptyLines = true
			o.NormalizeNewlines = true
			o.NewlineMode = whitespace.NewlineModeLinux
		})

		out := whitespace.Format(cfg, []byte("  \r\n\t\r\n"))
		assert.False(t, out.Changed)
	})
}

func TestFormatEmptyFiles(t *testing.T) {
	t.Parallel()

	cfg := configure(t, func(o *whitespace.Options) { o.EmptyFiles = whitespace.TrivialFileOneLine })
	out := whitespace.Format(cfg, nil)

	assert.Equal(t, "\n", string(out.Bytes))
	require.Len(t, out.Events, 1)
	assert.Equal(t, whitespace.EmptyFileNormalized, out.Events[0].Kind)
	assert.Equal(t, "Empty file would be replaced with a single empty line.", out.Events[0].Format(true))

	cfg = configure(t, func(o *whitespace.Options) {
		o.EmptyFiles = whitespace.TrivialFileOneLine
		o.NewlineMode = whitespace.NewlineModeWindows
	})
	assert.Equal(t, "\r\n", string(whitespace.Format(cfg, []byte{}).Bytes))
}

func TestFormatTabs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		input  string
		want   string
		kind   whitespace.ChangeKind
		events int
	}{
		{name: "negative leaves tabs", width: -47, input: "\t", want: "\t"},
		{name: "zero removes", width: 0, input: "\thello", want: "hello", kind: whitespace.TabsRemoved, events: 1},
		{name: "replaces with spaces", width: 3, input: "\thello", want: "   hello", kind: whitespace.TabsReplaced, events: 1},
		{name: "one event per tab", width: 1, input: "a\t\tb\t\n", want: "a  b \n", kind: whitespace.TabsReplaced, events: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) { o.TabWidth = tt.width })
			out := whitespace.Format(cfg, []byte(tt.input))

			assert.Equal(t, tt.want, string(out.Bytes))
			require.Len(t, out.Events, tt.events)
			for _, e := range out.Events {
				assert.Equal(t, tt.kind, e.Kind)
			}
		})
	}
}

func TestFormatNonStandardWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode whitespace.NonStandardMode
		want string
	}{
		{mode: whitespace.NonStandardIgnore, want: "\x0B\x0Chello\t "},
		{mode: whitespace.NonStandardReplace, want: "  hello\t "},
		{mode: whitespace.NonStandardRemove, want: "hello\t "},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			t.Parallel()

			cfg := configure(t, func(o *whitespace.Options) { o.NonStandard = tt.mode })
			out := whitespace.Format(cfg, []byte("\x0B\x0Chello\t "))

			assert.Equal(t, tt.want, string(out.Bytes))
		})
	}

	cfg := configure(t, func(o *whitespace.Options) { o.NonStandard = whitespace.NonStandardReplace })
	out := whitespace.Format(cfg, []byte("a\vb"))
	require.Len(t, out.Events, 1)
	assert.Equal(t, `\v`, out.Events[0].Detail)
	assert.Equal(t, `line 1: Non-standard whitespace character '\v' would be replaced by a space.`, out.Events[0].Format(true))
}

func TestFormatEventsAreOrderedByLine(t *testing.T) {
	t.Parallel()

	cfg := configure(t, func(o *whitespace.Options) {
		o.TabWidth = 1
		o.RemoveTrailingWhitespace = true
		o.NormalizeNewlines = true
		o.NewlineMode = whitespace.NewlineModeLinux
		o.AddEOF = true
	})

	out := whitespace.Format(cfg, []byte("a \r\n\tb\r\nc"))
	require.NotEmpty(t, out.Events)

	for i := 1; i < len(out.Events); i++ {
		assert.LessOrEqual(t, out.Events[i-1].Line, out.Events[i].Line)
	}
	assert.Equal(t, "a\n b\nc\n", string(out.Bytes))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	events := []whitespace.ChangeEvent{{Line: 2, Kind: whitespace.TrailingWhitespaceRemoved}}

	unchanged := whitespace.Detect([]byte("same"), []byte("same"), events)
	assert.False(t, unchanged.Changed)
	assert.Empty(t, unchanged.Events)

	changed := whitespace.Detect([]byte("a "), []byte("a"), events)
	assert.True(t, changed.Changed)
	assert.Equal(t, events, changed.Events)
	assert.Equal(t, map[whitespace.ChangeKind]int{whitespace.TrailingWhitespaceRemoved: 1}, changed.CountByKind())
}

func TestChangeKindStrings(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, k := range whitespace.AllChangeKinds() {
		name := k.String()
		assert.NotContains(t, name, "unknown", "kind %d", int(k))
		assert.False(t, seen[name], "duplicate name %s", name)
		assert.NotEmpty(t, k.Description())
		seen[name] = true
	}

	assert.Len(t, seen, 12)
}

func BenchmarkFormat(b *testing.B) {
	cfg := configure(b, func(o *whitespace.Options) {
		o.NormalizeNewlines = true
		o.RemoveTrailingWhitespace = true
		o.RemoveTrailingEmptyLines = true
		o.AddEOF = true
		o.TabWidth = 4
	})

	var input []byte
	for i := 0; i < 1000; i++ {
		input = append(input, "\tsome line of text with trailing space  \r\n"...)
	}

	b.SetBytes(int64(len(input)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		whitespace.Format(cfg, input)
	}
}
