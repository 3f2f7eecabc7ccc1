package schema

import (
	"fmt"
	"strings"
	"time"
)

// Validation is the structured pass/fail report for a built schema. It
// never blocks emission; callers decide what to do with warnings.
type Validation struct {
	Valid       bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

var requiredFields = []string{"@context", "@type", "headline", "author", "publisher"}

// Validate checks the five required top-level fields, the @type value, URL
// well-formedness, and datePublished parseability.
func Validate(schema map[string]any) Validation {
	v := Validation{Valid: true}

	for _, field := range requiredFields {
		if _, ok := schema[field]; !ok {
			v.Errors = append(v.Errors, fmt.Sprintf("missing required field: %s", field))
			v.Valid = false
		}
	}

	if t, _ := schema["@type"].(string); t != "BlogPosting" {
		v.Errors = append(v.Errors, "schema type should be 'BlogPosting'")
		v.Valid = false
	}

	if u, _ := schema["url"].(string); !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		v.Warnings = append(v.Warnings, "url should be a valid absolute URL")
	}

	if raw, ok := schema["datePublished"].(string); ok {
		if _, err := time.Parse(time.RFC3339, raw); err != nil {
			v.Errors = append(v.Errors, "datePublished should be in ISO 8601 format")
			v.Valid = false
		}
	}

	if headline, _ := schema["headline"].(string); len(headline) > maxHeadlineChars {
		v.Warnings = append(v.Warnings, fmt.Sprintf("headline is longer than recommended (%d chars)", maxHeadlineChars))
	}
	if description, _ := schema["description"].(string); len(description) > maxDescriptionChars {
		v.Warnings = append(v.Warnings, fmt.Sprintf("description is longer than recommended (%d chars)", maxDescriptionChars))
	}

	if _, ok := schema["image"]; !ok {
		v.Suggestions = append(v.Suggestions, "consider adding an image for better SEO")
	}
	if _, ok := schema["keywords"]; !ok {
		v.Suggestions = append(v.Suggestions, "adding keywords can improve content discoverability")
	}

	return v
}
