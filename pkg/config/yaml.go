package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// YAMLIndent is the indentation used when writing YAML.
const YAMLIndent = 2

// ToYAML serializes the persistent fields of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration after a comment header.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	return withHeader(header, body), nil
}

// ToTOML serializes the persistent fields of the configuration as TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML. Unknown keys are an error.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		// A file with only comments has no document.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// FromTOML parses a configuration from TOML. It also returns the keys that
// did not map to any field.
func FromTOML(data []byte) (*Config, []string, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}

	return cfg, unknown, nil
}

// Clone returns a deep copy of the configuration, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Whitespace = c.Whitespace.clone()
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Exclude = slices.Clone(c.Exclude)
	clone.FollowSymlinks = cloneBool(c.FollowSymlinks)
	clone.Hidden = cloneBool(c.Hidden)
	clone.SkipVendored = cloneBool(c.SkipVendored)
	clone.SkipGenerated = cloneBool(c.SkipGenerated)
	clone.Backups.Enabled = cloneBool(c.Backups.Enabled)

	return &clone
}

func (w WhitespaceConfig) clone() WhitespaceConfig {
	clone := w
	clone.AddNewLineMarkerAtEndOfFile = cloneBool(w.AddNewLineMarkerAtEndOfFile)
	clone.RemoveNewLineMarkerFromEndOfFile = cloneBool(w.RemoveNewLineMarkerFromEndOfFile)
	clone.NormalizeNewLineMarkers = cloneBool(w.NormalizeNewLineMarkers)
	clone.RemoveTrailingWhitespace = cloneBool(w.RemoveTrailingWhitespace)
	clone.RemoveLeadingEmptyLines = cloneBool(w.RemoveLeadingEmptyLines)
	clone.RemoveTrailingEmptyLines = cloneBool(w.RemoveTrailingEmptyLines)

	if w.ReplaceTabsWithSpaces != nil {
		clone.ReplaceTabsWithSpaces = Int(*w.ReplaceTabsWithSpaces)
	}

	return clone
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}

	return Bool(*p)
}

func withHeader(header string, body []byte) []byte {
	if header == "" {
		return body
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes()
}
