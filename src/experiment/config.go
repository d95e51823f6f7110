package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of known variants.
type Config struct {
	Variants []Variant `yaml:"variants"`
}

// DefaultConfig returns the built-in variants.
func DefaultConfig() *Config {
	return &Config{Variants: DefaultVariants()}
}

// Load reads a YAML variants file on top of the defaults. A variant whose tag
// matches a built-in one replaces it entirely; other tags are appended.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, v := range file.Variants {
		v.applyDefaults()
		if i := cfg.index(v.Tag); i >= 0 {
			cfg.Variants[i] = v
		} else {
			cfg.Variants = append(cfg.Variants, v)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every variant.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for i := range c.Variants {
		v := &c.Variants[i]
		if seen[v.Tag] {
			return fmt.Errorf("duplicate variant %q", v.Tag)
		}
		seen[v.Tag] = true
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) index(tag string) int {
	for i, v := range c.Variants {
		if v.Tag == tag {
			return i
		}
	}
	return -1
}

// Variant returns the variant with the given tag.
func (c *Config) Variant(tag string) (Variant, error) {
	if i := c.index(tag); i >= 0 {
		return c.Variants[i], nil
	}
	return Variant{}, fmt.Errorf("unknown variant %q", tag)
}

// Tags lists the variant tags in configuration order.
func (c *Config) Tags() []string {
	out := make([]string, len(c.Variants))
	for i, v := range c.Variants {
		out[i] = v.Tag
	}
	return out
}
