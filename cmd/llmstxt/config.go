package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/llmstxt"
)

// Config is the llms.yml build configuration.
type Config struct {
	// Title and Summary feed the generated llms.txt header.
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`

	// Section names the llms.txt section the links go under.
	Section string `yaml:"section"`

	// Input and Output are the source tree and target directory.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// BaseURL makes relative links in the output absolute.
	BaseURL string `yaml:"base_url"`

	// Extractor selects the boilerplate stripper: "goquery",
	// "trafilatura", or "none".
	Extractor string `yaml:"extractor"`

	// Concurrency bounds parallel conversions.
	Concurrency int `yaml:"concurrency"`

	// Exclude lists glob patterns to skip.
	Exclude []string `yaml:"exclude"`

	// Clean lists post-processing rules by name.
	Clean []string `yaml:"clean"`

	// CachePath enables the conversion cache when set.
	CachePath string `yaml:"cache"`
}

// LoadConfig reads and validates an llms.yml file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "config file %q not found", path)
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "invalid config %q: %v", path, err)
	}

	if cfg.Input == "" {
		cfg.Input = "."
	}
	if cfg.Output == "" {
		cfg.Output = "llms-out"
	}
	if cfg.Section == "" {
		cfg.Section = "Docs"
	}

	switch cfg.Extractor {
	case "", "goquery", "trafilatura", "none":
	default:
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "unknown extractor %q", cfg.Extractor)
	}

	return cfg, nil
}

// cleanRules maps config rule names to implementations. ExpandLinks
// needs the base URL, so it is constructed per config.
func (c *Config) cleanRules() ([]llmstxt.CleanRule, error) {
	var rules []llmstxt.CleanRule
	for _, name := range c.Clean {
		switch name {
		case "strip-frontmatter":
			rules = append(rules, llmstxt.StripFrontmatter{})
		case "strip-badges":
			rules = append(rules, llmstxt.StripBadges{})
		case "expand-links":
			rules = append(rules, llmstxt.ExpandLinks{Base: c.BaseURL})
		case "collapse-blank-lines":
			rules = append(rules, llmstxt.CollapseBlankLines{})
		default:
			return nil, llmstxt.Errorf(llmstxt.EINVALID, "unknown clean rule %q", name)
		}
	}
	return rules, nil
}
