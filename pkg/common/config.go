package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultTypeKey = "$type"

type PrintOptions struct {
	Format            string `yaml:"option-format,omitempty"`
	Indent            int    `yaml:"option-indent,omitempty"`
	TypeKey           string `yaml:"option-type-key,omitempty"`
	PythonSeparators  bool   `yaml:"option-python-separators,omitempty"`
	TrimTokenOnOutput int    `yaml:"option-trim-token-on-output,omitempty"`
}

func (o *PrintOptions) trim() int {
	if o == nil {
		return 0
	}
	return o.TrimTokenOnOutput
}

func (o *PrintOptions) typeKey() string {
	if o == nil || o.TypeKey == "" {
		return DefaultTypeKey
	}
	return o.TypeKey
}

// DumpConfig is the YAML options file shared by the command line tools.
// Flags given on the command line take precedence over file values.
type DumpConfig struct {
	PrintOptions      `yaml:",inline"`
	Mode              string `yaml:"option-mode,omitempty"`
	ExcludeAttributes bool   `yaml:"option-exclude-attributes,omitempty"`
}

// LoadDumpConfig loads options from a YAML file.
func LoadDumpConfig(filename string) (*DumpConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseDumpConfig(data)
}

// ParseDumpConfig decodes options from YAML text. Unknown keys are rejected
// so that misspelt options do not pass silently.
func ParseDumpConfig(data []byte) (*DumpConfig, error) {
	var config DumpConfig
	if len(data) == 0 {
		return &config, nil
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid options file: %w", err)
	}
	if err := strictKeys(data); err != nil {
		return nil, err
	}
	return &config, nil
}

var knownOptionKeys = map[string]bool{
	"option-format":               true,
	"option-indent":               true,
	"option-type-key":             true,
	"option-python-separators":    true,
	"option-trim-token-on-output": true,
	"option-mode":                 true,
	"option-exclude-attributes":   true,
}

func strictKeys(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid options file: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("invalid options file: expected a mapping of option-* keys")
	}
	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if !knownOptionKeys[key.Value] {
			return fmt.Errorf("unknown option '%s' at line %d", key.Value, key.Line)
		}
	}
	return nil
}
