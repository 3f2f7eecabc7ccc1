package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/blogschema/internal/analyze"
	"github.com/hyperifyio/blogschema/internal/cache"
	"github.com/hyperifyio/blogschema/internal/extract"
	"github.com/hyperifyio/blogschema/internal/fetch"
	"github.com/hyperifyio/blogschema/internal/llm"
	"github.com/hyperifyio/blogschema/internal/schema"
)

// ErrInvalidURL marks input rejected before any network call.
var ErrInvalidURL = errors.New("invalid URL")

// Result is the full pipeline output for one URL.
type Result struct {
	Content    extract.Content   `json:"content"`
	Analysis   analyze.Result    `json:"analysis"`
	Schema     map[string]any    `json:"schema"`
	Validation schema.Validation `json:"validation"`
}

// App wires the fetch, extract, analyze, and schema stages together. The
// pipeline is strictly linear; only input and network errors surface to
// the caller, every other failure degrades output quality instead.
type App struct {
	cfg       Config
	fetcher   *fetch.Client
	extractor *extract.Extractor
	analyzer  *analyze.Analyzer
	builder   *schema.Builder
}

// New builds an App from explicit configuration. When an LLM API key is
// configured the connection is probed best-effort; a failed probe logs a
// warning and leaves the enrichment path active.
func New(ctx context.Context, cfg Config) *App {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	var pageCache *cache.PageCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			_, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		pageCache = &cache.PageCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge}
	}

	a := &App{
		cfg: cfg,
		fetcher: &fetch.Client{
			HTTPClient:        newPageHTTPClient(),
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       cfg.MaxAttempts,
			PerRequestTimeout: cfg.Timeout,
			Cache:             pageCache,
		},
		extractor: &extract.Extractor{},
		analyzer:  &analyze.Analyzer{},
		builder:   &schema.Builder{Site: cfg.Site},
	}

	if cfg.LLMAPIKey != "" && cfg.LLMModel != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
		a.analyzer.Insights = &analyze.ModelInsights{Client: provider, Model: cfg.LLMModel}

		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if models, err := provider.ListModels(probeCtx); err != nil {
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		} else {
			log.Info().Int("count", len(models.Models)).Msg("LLM models available")
		}
	}

	return a
}

// NormalizeURL prefixes a missing scheme with https and strips a trailing
// slash, mirroring what users paste from address bars.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if len(raw) > 1 {
		raw = strings.TrimRight(raw, "/")
	}
	return raw
}

// ValidateURL normalizes and syntactically validates the input. It never
// touches the network.
func ValidateURL(raw string) (string, error) {
	normalized := NormalizeURL(raw)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidURL, raw)
	}
	if !strings.Contains(u.Host, ".") && u.Host != "localhost" && !strings.Contains(u.Host, ":") {
		return "", fmt.Errorf("%w: host %q looks malformed", ErrInvalidURL, u.Host)
	}
	return normalized, nil
}

// Generate runs the full pipeline for one URL: validate, fetch, extract,
// analyze, build, validate schema.
func (a *App) Generate(ctx context.Context, rawURL string) (*Result, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", target).Msg("fetching page")
	body, contentType, err := a.fetcher.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	var content extract.Content
	doc, err := extract.Parse(body, contentType)
	if err != nil {
		log.Warn().Err(err).Msg("HTML parse failed; degrading to minimal record")
		content = extract.Degenerate(target)
	} else {
		content = a.extractor.FromDocument(doc, target)
	}
	log.Debug().Int("words", content.WordCount).Str("headline", content.Headline).Msg("extraction complete")

	analysis := a.analyzer.Analyze(ctx, content)

	built := a.builder.Build(content, &analysis)
	validation := schema.Validate(built)
	if !validation.Valid {
		log.Warn().Strs("errors", validation.Errors).Msg("schema validation reported errors")
	}

	return &Result{
		Content:    content,
		Analysis:   analysis,
		Schema:     built,
		Validation: validation,
	}, nil
}
