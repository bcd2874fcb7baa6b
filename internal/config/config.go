package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvBaseURL    = "MOBILECONTENT_BASE_URL"
	EnvNestedTags = "MOBILECONTENT_NESTED_TAGS"
	EnvSanitize   = "MOBILECONTENT_SANITIZE"
)

// Config holds configuration options for the conversion process
type Config struct {
	// BaseURL is used to absolutize relative src/href values.
	// Empty means it is derived from the incoming request.
	BaseURL string `yaml:"baseURL" json:"baseURL"`

	// NestedTags lists the tags whose children are collapsed into one grouped block
	NestedTags []string `yaml:"nestedTags" json:"nestedTags"`

	// Sanitize strips scripts, styles and unsafe markup before parsing
	Sanitize bool `yaml:"sanitize" json:"sanitize"`

	// Rules declares extra tag rules, keyed by tag name
	Rules map[string]RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec describes a declarative tag rule.
// Without Attr the element's text becomes a block of the given type,
// with Attr the attribute value is resolved to an absolute URL instead.
type RuleSpec struct {
	Type string `yaml:"type" json:"type"`
	Attr string `yaml:"attr" json:"attr"`
}

// Default returns the stock configuration: only <ul> keeps its children
func Default() Config {
	return Config{
		NestedTags: []string{"ul"},
		Rules:      map[string]RuleSpec{},
	}
}

// Load reads a YAML config file on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}

	if v := strings.TrimSpace(getenv(EnvNestedTags)); v != "" {
		c.NestedTags = splitList(v)
	}

	if v := strings.TrimSpace(getenv(EnvSanitize)); v != "" {
		sanitize, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSanitize, v, err)
		}
		c.Sanitize = sanitize
	}

	return nil
}

// Validate checks that every declared rule names a block type
func (c Config) Validate() error {
	for tag, spec := range c.Rules {
		if strings.TrimSpace(tag) == "" {
			return errors.New("rule with empty tag name")
		}
		if strings.TrimSpace(spec.Type) == "" {
			return fmt.Errorf("rule for tag %q has no type", tag)
		}
	}
	return nil
}

// IsNested reports whether tag is in the nesting whitelist
func (c Config) IsNested(tag string) bool {
	for _, nested := range c.NestedTags {
		if strings.EqualFold(nested, tag) {
			return true
		}
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
