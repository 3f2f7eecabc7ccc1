package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperifyio/blogschema/internal/extract"
)

// SEO reports heuristic checks over title, description, and content, plus a
// weighted composite score out of 100.
type SEO struct {
	Title       SEOField `json:"title_analysis"`
	Description SEOField `json:"description_analysis"`

	HasMetaDescription bool `json:"has_meta_description"`
	HasHeadings        bool `json:"has_headings"`
	HasImage           bool `json:"has_images"`
	WordCountOptimal   bool `json:"word_count_optimal"`

	Score float64 `json:"overall_seo_score"`
	Slug  string  `json:"suggested_slug,omitempty"`
}

type SEOField struct {
	Length         int    `json:"length"`
	WordCount      int    `json:"word_count"`
	OptimalLength  bool   `json:"optimal_length"`
	HasKeywords    bool   `json:"has_keywords"`
	Recommendation string `json:"recommendation"`
}

func seoAnalysis(c extract.Content, ka KeywordAnalysis) SEO {
	// Known keywords: extractor categories win, analyzer keywords fill in.
	known := c.Categories
	if len(known) == 0 {
		for _, kw := range ka.TopKeywords {
			known = append(known, kw.Word)
		}
	}
	if len(known) > 5 {
		known = known[:5]
	}

	s := SEO{
		Title:              fieldAnalysis(c.Headline, known, 30, 60, "title"),
		Description:        fieldAnalysis(c.Description, known, 120, 160, "description"),
		HasMetaDescription: len(c.Description) > 50,
		HasHeadings:        len(c.Headings) > 0,
		HasImage:           c.Image != nil,
		WordCountOptimal:   c.WordCount >= 300 && c.WordCount <= 2500,
		Slug:               Slug(c.Headline),
	}

	// Weighted all-or-nothing checks summing to 100.
	score := 0.0
	if s.Title.OptimalLength {
		score += 15
	}
	if s.Title.HasKeywords {
		score += 10
	}
	if s.Description.OptimalLength {
		score += 15
	}
	if s.Description.HasKeywords {
		score += 10
	}
	if s.HasMetaDescription {
		score += 10
	}
	if s.HasHeadings {
		score += 15
	}
	if s.HasImage {
		score += 10
	}
	if s.WordCountOptimal {
		score += 15
	}
	s.Score = score
	return s
}

func fieldAnalysis(text string, keywords []string, minLen, maxLen int, label string) SEOField {
	f := SEOField{
		Length:        len(text),
		WordCount:     len(strings.Fields(text)),
		OptimalLength: len(text) >= minLen && len(text) <= maxLen,
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			f.HasKeywords = true
			break
		}
	}
	switch {
	case len(text) < minLen:
		f.Recommendation = fmt.Sprintf("The %s is too short; aim for %d-%d characters.", label, minLen, maxLen)
	case len(text) > maxLen:
		f.Recommendation = fmt.Sprintf("The %s is too long; keep it under %d characters.", label, maxLen)
	default:
		f.Recommendation = fmt.Sprintf("The %s length is optimal.", label)
	}
	return f
}

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Slug derives a URL-friendly slug from a headline.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
