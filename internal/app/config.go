package app

import (
	"time"

	"github.com/hyperifyio/blogschema/internal/schema"
)

// Config holds runtime configuration for a pipeline instance. It is passed
// in explicitly at construction time; there is no ambient lookup.
type Config struct {
	// Fetch
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int

	// Page cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// LLM enrichment; an empty API key disables the path entirely.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Optional site metadata merged into the schema.
	Site schema.SiteConfig

	Verbose bool
}
