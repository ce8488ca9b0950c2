package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gowsfmt/internal/configloader"
	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain, plain}
	}

	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":     h.styles.Command.Render,
		"heading":     h.styles.Heading.Render,
		"subcommand":  h.styles.Subcommand.Render,
		"example":     h.styles.Example.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"environment": h.environment,
		"rpad":        pretty.PadRight,
		"trimRight":   func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

// flagUsages colors the flag names and types of a pflag usage block.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}

	return strings.Join(lines, "\n")
}

// flagLine styles one "  -f, --flag type   description" line. pflag
// separates the description by at least three spaces.
func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	names, desc, found := strings.Cut(trimmed, "   ")
	if !found {
		return line
	}
	gap := len(trimmed) - len(names) - len(strings.TrimLeft(trimmed[len(names):], " "))

	var b strings.Builder
	b.WriteString(indent)
	for i, token := range strings.Fields(names) {
		if i > 0 {
			b.WriteByte(' ')
		}
		if name, ok := strings.CutSuffix(token, ","); ok {
			b.WriteString(h.styles.Flag.Render(name) + ",")
		} else if strings.HasPrefix(token, "-") {
			b.WriteString(h.styles.Flag.Render(token))
		} else {
			b.WriteString(h.styles.Dim.Render(token))
		}
	}
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(h.styles.Description.Render(strings.TrimLeft(desc, " ")))

	return b.String()
}

func (h *HelpFormatter) environment() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.Flag.Render(pretty.PadRight(v.Name, width))+"   "+v.Description)
	}

	return strings.Join(lines, "\n")
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.Must(usage.Clone()).New("help").Parse(helpTemplate + `{{ template "usage" . }}`))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.ExecuteTemplate(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}
