package report

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/blogschema/internal/analyze"
	"github.com/hyperifyio/blogschema/internal/extract"
	"github.com/hyperifyio/blogschema/internal/schema"
)

// Text renders a human-readable analysis summary in a light Markdown
// layout, suitable for terminal display or PDF conversion.
func Text(c extract.Content, a analyze.Result, v schema.Validation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Content Report\n\n")
	fmt.Fprintf(&b, "URL: %s\n", c.URL)
	if c.Headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", c.Headline)
	}
	if c.Author != nil {
		fmt.Fprintf(&b, "Author: %s\n", c.Author.Name)
	}
	fmt.Fprintf(&b, "Publisher: %s\n", c.Publisher.Name)
	fmt.Fprintf(&b, "\n")

	if a.Error != "" {
		fmt.Fprintf(&b, "Analysis unavailable: %s\n", a.Error)
	} else {
		fmt.Fprintf(&b, "## Content Metrics\n\n")
		m := a.ContentMetrics
		fmt.Fprintf(&b, "Words: %d, sentences: %d, paragraphs: %d\n", m.WordCount, m.SentenceCount, m.ParagraphCount)
		fmt.Fprintf(&b, "Reading time: %d min\n\n", m.ReadingTimeMinutes)

		fmt.Fprintf(&b, "## Readability\n\n")
		fmt.Fprintf(&b, "Flesch score: %.2f (%s)\n\n", a.Readability.FleschScore, a.Readability.ReadingLevel)

		if len(a.KeywordAnalysis.TopKeywords) > 0 {
			fmt.Fprintf(&b, "## Top Keywords\n\n")
			for i, kw := range a.KeywordAnalysis.TopKeywords {
				if i >= 10 {
					break
				}
				fmt.Fprintf(&b, "- %s (%d)\n", kw.Word, kw.Frequency)
			}
			fmt.Fprintf(&b, "\n")
		}

		fmt.Fprintf(&b, "## SEO\n\n")
		fmt.Fprintf(&b, "Score: %.0f/100\n", a.SEO.Score)
		fmt.Fprintf(&b, "- %s\n", a.SEO.Title.Recommendation)
		fmt.Fprintf(&b, "- %s\n", a.SEO.Description.Recommendation)
		if a.SEO.Slug != "" {
			fmt.Fprintf(&b, "- Suggested slug: %s\n", a.SEO.Slug)
		}
		fmt.Fprintf(&b, "\n")

		if a.AIInsights != nil {
			fmt.Fprintf(&b, "## AI Insights\n\n")
			fmt.Fprintf(&b, "Audience: %s, sentiment: %s\n", a.AIInsights.TargetAudience, a.AIInsights.Sentiment)
			for _, imp := range a.AIInsights.Improvements {
				fmt.Fprintf(&b, "- %s\n", imp)
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	fmt.Fprintf(&b, "## Schema Validation\n\n")
	if v.Valid {
		fmt.Fprintf(&b, "Schema is valid.\n")
	} else {
		fmt.Fprintf(&b, "Schema has errors.\n")
	}
	for _, e := range v.Errors {
		fmt.Fprintf(&b, "- ERROR: %s\n", e)
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(&b, "- warning: %s\n", w)
	}
	for _, s := range v.Suggestions {
		fmt.Fprintf(&b, "- suggestion: %s\n", s)
	}

	return b.String()
}
