package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogschema/internal/app"
	"github.com/hyperifyio/blogschema/internal/report"
	"github.com/hyperifyio/blogschema/internal/schema"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		targetURL   string
		outputPath  string
		format      string
		reportPath  string
		pdfPath     string
		configPath  string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		userAgent   string
		timeout     time.Duration
		attempts    int
		cacheDir    string
		cacheMaxAge time.Duration
		cacheClear  bool
		showChecks  bool
		verbose     bool
	)

	flag.StringVar(&targetURL, "url", "", "Blog post URL to analyze (positional argument also accepted)")
	flag.StringVar(&outputPath, "output", "", "Path to write the JSON-LD schema; empty writes to stdout")
	flag.StringVar(&format, "format", "json", "Output format: json, min, or html (script tag)")
	flag.StringVar(&reportPath, "report", "", "Optional path to write a text analysis report")
	flag.StringVar(&pdfPath, "report.pdf", "", "Optional path to write the analysis report as PDF")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file; flags take precedence")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for AI insights")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server; empty disables AI insights")
	flag.StringVar(&userAgent, "fetch.ua", "", "Custom User-Agent for page requests")
	flag.DurationVar(&timeout, "fetch.timeout", 0, "Per-request timeout (e.g. 15s); 0 uses the default")
	flag.IntVar(&attempts, "fetch.attempts", 0, "Max fetch attempts for transient failures; 0 uses the default")
	flag.StringVar(&cacheDir, "cache.dir", "", "Page cache directory; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&showChecks, "validate", false, "Print the validation report as JSON to stdout after the schema")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if targetURL == "" && flag.NArg() > 0 {
		targetURL = flag.Arg(0)
	}

	cfg := app.Config{
		UserAgent:   userAgent,
		Timeout:     timeout,
		MaxAttempts: attempts,
		CacheDir:    cacheDir,
		CacheMaxAge: cacheMaxAge,
		CacheClear:  cacheClear,
		LLMBaseURL:  llmBaseURL,
		LLMModel:    llmModel,
		LLMAPIKey:   llmKey,
		Verbose:     verbose,
	}

	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Error().Err(err).Msg("config file")
			os.Exit(2)
		}
		fc.Apply(&cfg)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if targetURL == "" {
		fmt.Fprintln(os.Stderr, "usage: blogschema [flags] <url>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(cfg, targetURL, outputPath, format, reportPath, pdfPath, showChecks); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: nonzero only on input or network failures.
		// Everything past a successful fetch degrades instead of failing.
		if errors.Is(err, app.ErrInvalidURL) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config, targetURL, outputPath, format, reportPath, pdfPath string, showChecks bool) error {
	ctx := context.Background()

	a := app.New(ctx, cfg)
	res, err := a.Generate(ctx, targetURL)
	if err != nil {
		return err
	}

	out, err := renderSchema(res.Schema, format)
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Println(out)
	} else if err := os.WriteFile(outputPath, []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if showChecks {
		b, err := json.MarshalIndent(res.Validation, "", "  ")
		if err != nil {
			return fmt.Errorf("encode validation: %w", err)
		}
		fmt.Println(string(b))
	}

	for _, w := range res.Validation.Warnings {
		log.Warn().Str("warning", w).Msg("schema validation")
	}
	for _, s := range res.Validation.Suggestions {
		log.Info().Str("suggestion", s).Msg("schema validation")
	}

	if reportPath != "" || pdfPath != "" {
		text := report.Text(res.Content, res.Analysis, res.Validation)
		if reportPath != "" {
			if err := os.WriteFile(reportPath, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			log.Info().Str("path", reportPath).Msg("report written")
		}
		if pdfPath != "" {
			if err := report.WritePDF(text, pdfPath); err != nil {
				return fmt.Errorf("write pdf report: %w", err)
			}
			log.Info().Str("path", pdfPath).Msg("pdf report written")
		}
	}

	return nil
}

func renderSchema(s map[string]any, format string) (string, error) {
	switch format {
	case "json":
		b, err := schema.MarshalIndented(s)
		return string(b), err
	case "min":
		b, err := schema.MarshalMinified(s)
		return string(b), err
	case "html":
		return schema.HTMLScriptTag(s)
	default:
		return "", fmt.Errorf("unknown format %q (want json, min, or html)", format)
	}
}
