package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/blogschema/internal/schema"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to flags; file values fill gaps, flags win.
type FileConfig struct {
	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		UserAgent string        `yaml:"ua" json:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		Attempts  int           `yaml:"attempts" json:"attempts"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir    string        `yaml:"dir" json:"dir"`
		MaxAge time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool          `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Site schema.SiteConfig `yaml:"site" json:"site"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadFileConfig reads and decodes a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Apply fills empty Config fields from the file without overriding values
// the caller already set via flags or environment.
func (fc FileConfig) Apply(cfg *Config) {
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = fc.Fetch.Attempts
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if isZeroSite(cfg.Site) {
		cfg.Site = fc.Site
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}

func isZeroSite(s schema.SiteConfig) bool {
	return s.Publisher.Name == "" && s.Publisher.URL == "" && s.Publisher.Logo == "" &&
		s.Author.URL == "" && s.Author.JobTitle == "" && s.Author.WorksFor == "" &&
		len(s.Author.SameAs) == 0 && len(s.Publisher.SameAs) == 0
}
