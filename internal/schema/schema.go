package schema

import (
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogschema/internal/analyze"
	"github.com/hyperifyio/blogschema/internal/extract"
)

const schemaContext = "https://schema.org"

// Display limits per Google's guidance.
const (
	maxHeadlineChars    = 110
	maxDescriptionChars = 160
	maxArticleBodyChars = 5000
)

// SiteConfig carries optional site metadata supplied by the operator. It
// enriches the author and publisher nodes; every field is optional.
type SiteConfig struct {
	Author    AuthorProfile    `yaml:"author" json:"author"`
	Publisher PublisherProfile `yaml:"publisher" json:"publisher"`
}

type AuthorProfile struct {
	URL      string   `yaml:"url" json:"url"`
	SameAs   []string `yaml:"sameAs" json:"sameAs"`
	JobTitle string   `yaml:"jobTitle" json:"jobTitle"`
	WorksFor string   `yaml:"worksFor" json:"worksFor"`
}

type PublisherProfile struct {
	Name       string   `yaml:"name" json:"name"`
	URL        string   `yaml:"url" json:"url"`
	Logo       string   `yaml:"logo" json:"logo"`
	LogoWidth  int      `yaml:"logoWidth" json:"logoWidth"`
	LogoHeight int      `yaml:"logoHeight" json:"logoHeight"`
	SameAs     []string `yaml:"sameAs" json:"sameAs"`
}

// Builder assembles BlogPosting JSON-LD objects. Now is injectable so
// repeated builds over identical input are byte-identical in tests.
type Builder struct {
	Site SiteConfig
	Now  func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now().UTC()
}

// Build merges extracted content and optional analysis into a BlogPosting
// object, then prunes empty values depth-first. Any internal failure falls
// back to the minimal valid schema.
func (b *Builder) Build(c extract.Content, a *analyze.Result) (out map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("cause", r).Msg("schema assembly failed; using minimal schema")
			out = b.Minimal(c)
		}
	}()

	s := map[string]any{
		"@context": schemaContext,
		"@type":    "BlogPosting",
		"@id":      c.URL,
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   c.URL,
		},
		"inLanguage": "en-US",
	}

	b.addCore(s, c)
	if node := b.authorNode(c); node != nil {
		s["author"] = node
	}
	s["publisher"] = b.publisherNode(c)
	if node := b.imageNode(c); node != nil {
		s["image"] = node
	}
	b.addContent(s, c)
	if a != nil {
		b.enhance(s, c, a)
	}
	b.addTechnical(s, c)
	if crumb := breadcrumb(c.URL, c.Headline); crumb != nil {
		s["breadcrumb"] = crumb
	}

	return pruneMap(s)
}

func (b *Builder) addCore(s map[string]any, c extract.Content) {
	if c.Headline != "" {
		s["headline"] = clampRunes(c.Headline, maxHeadlineChars)
		s["name"] = c.Headline
	}
	s["url"] = c.URL
	if c.Description != "" {
		s["description"] = clampRunes(c.Description, maxDescriptionChars)
	}
	if c.DatePublished != "" {
		s["datePublished"] = normalizeDate(c.DatePublished, b.now)
		modified := c.DateModified
		if modified == "" {
			modified = c.DatePublished
		}
		s["dateModified"] = normalizeDate(modified, b.now)
	}
	if c.WordCount > 0 {
		s["wordCount"] = c.WordCount
	}
	if c.IsPartOf != nil {
		s["isPartOf"] = map[string]any{"@type": "Blog", "@id": c.IsPartOf.URL}
	}
}

// authorNode is emitted only for a real extracted author, never fabricated.
// The validation report handles flagging its absence.
func (b *Builder) authorNode(c extract.Content) map[string]any {
	if c.Author == nil || c.Author.Name == "" || c.Author.Name == "Unknown Author" {
		return nil
	}
	node := map[string]any{
		"@type": "Person",
		"name":  c.Author.Name,
		"url":   c.Author.URL,
	}
	if b.Site.Author.URL != "" {
		node["url"] = b.Site.Author.URL
	}
	if len(b.Site.Author.SameAs) > 0 {
		node["sameAs"] = toAnySlice(b.Site.Author.SameAs)
	}
	if b.Site.Author.JobTitle != "" {
		node["jobTitle"] = b.Site.Author.JobTitle
	}
	if b.Site.Author.WorksFor != "" {
		node["worksFor"] = map[string]any{
			"@type": "Organization",
			"name":  b.Site.Author.WorksFor,
		}
	}
	return node
}

func (b *Builder) publisherNode(c extract.Content) map[string]any {
	name := b.Site.Publisher.Name
	if name == "" {
		name = c.Publisher.Name
	}
	if name == "" {
		name = extract.DomainLabel(c.URL)
	}
	if name == "" {
		name = "Blog Publisher"
	}
	node := map[string]any{
		"@type": "Organization",
		"name":  name,
		"url":   firstNonEmpty(b.Site.Publisher.URL, c.Publisher.URL),
	}
	logoURL := firstNonEmpty(b.Site.Publisher.Logo, c.Publisher.Logo.URL)
	if logoURL != "" {
		logo := map[string]any{"@type": "ImageObject", "url": logoURL}
		if b.Site.Publisher.Logo != "" {
			logo["width"] = defaultInt(b.Site.Publisher.LogoWidth, 600)
			logo["height"] = defaultInt(b.Site.Publisher.LogoHeight, 60)
		}
		node["logo"] = logo
	}
	if len(b.Site.Publisher.SameAs) > 0 {
		node["sameAs"] = toAnySlice(b.Site.Publisher.SameAs)
	}
	return node
}

// imageNode defaults to representative display dimensions; the caption
// falls back to the headline.
func (b *Builder) imageNode(c extract.Content) map[string]any {
	if c.Image == nil || c.Image.URL == "" {
		return nil
	}
	node := map[string]any{
		"@type":  "ImageObject",
		"url":    c.Image.URL,
		"width":  1200,
		"height": 630,
	}
	if c.Headline != "" {
		node["caption"] = c.Headline
	}
	return node
}

func (b *Builder) addContent(s map[string]any, c extract.Content) {
	if c.BodyText != "" {
		body := c.BodyText
		if utf8.RuneCountInString(body) > maxArticleBodyChars {
			body = clampRunes(body, maxArticleBodyChars) + "..."
		}
		s["articleBody"] = body
	}
	if len(c.Categories) > 0 {
		s["articleSection"] = c.Categories[0]
		s["keywords"] = toAnySlice(c.Categories)
	}
	if c.ReadingTime != "" {
		s["timeRequired"] = c.ReadingTime
	}
}

// enhance folds analyzer output into the schema: merged keywords, reading
// level, and AI-derived audience.
func (b *Builder) enhance(s map[string]any, c extract.Content, a *analyze.Result) {
	var analyzed []string
	for i, kw := range a.KeywordAnalysis.TopKeywords {
		if i >= 15 {
			break
		}
		analyzed = append(analyzed, kw.Word)
	}
	var aiTopics []string
	if a.AIInsights != nil {
		for _, topic := range a.AIInsights.MainTopics {
			aiTopics = append(aiTopics, strings.ToLower(topic))
		}
	}
	maxKeywords := 20
	if len(aiTopics) > 0 {
		maxKeywords = 25
	}
	merged := mergeKeywords(maxKeywords, c.Categories, analyzed, aiTopics)
	if len(merged) > 0 {
		s["keywords"] = toAnySlice(merged)
	}

	if a.Readability.ReadingLevel != "" && a.Readability.ReadingLevel != "Unknown" {
		s["about"] = map[string]any{
			"@type": "Thing",
			"name":  "Content with " + a.Readability.ReadingLevel + " reading level",
		}
	}
	if a.AIInsights != nil && a.AIInsights.TargetAudience != "" {
		s["audience"] = map[string]any{
			"@type":        "Audience",
			"audienceType": a.AIInsights.TargetAudience,
		}
	}
}

// mergeKeywords deduplicates across sources as a set. Output is sorted so
// identical input always yields identical output.
func mergeKeywords(max int, sources ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, src := range sources {
		for _, kw := range src {
			kw = strings.TrimSpace(kw)
			key := strings.ToLower(kw)
			if kw == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, kw)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func (b *Builder) addTechnical(s map[string]any, c extract.Content) {
	s["encodingFormat"] = "text/html"
	s["contentRating"] = "General"
	if c.URL != "" {
		s["contentLocation"] = map[string]any{
			"@type": "Place",
			"url":   c.URL,
		}
	}
	s["accessibilityFeature"] = []any{"readingOrder", "structuralNavigation"}
	if label := extract.DomainLabel(c.URL); label != "" {
		s["copyrightHolder"] = map[string]any{
			"@type": "Organization",
			"name":  label,
		}
		s["copyrightYear"] = b.now().Year()
	}
}

// Minimal is the fallback emitted when richer assembly fails.
func (b *Builder) Minimal(c extract.Content) map[string]any {
	headline := c.Headline
	if headline == "" {
		headline = "Blog Post"
	}
	authorName := "Unknown Author"
	if c.Author != nil && c.Author.Name != "" {
		authorName = c.Author.Name
	}
	publisherName := c.Publisher.Name
	if publisherName == "" {
		publisherName = "Blog Publisher"
	}
	return map[string]any{
		"@context":      schemaContext,
		"@type":         "BlogPosting",
		"headline":      headline,
		"url":           c.URL,
		"datePublished": b.now().Format(time.RFC3339),
		"author": map[string]any{
			"@type": "Person",
			"name":  authorName,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  publisherName,
		},
	}
}

// breadcrumb is built only when the URL path has at least two segments.
func breadcrumb(rawURL, headline string) map[string]any {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	var segments []string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) < 2 {
		return nil
	}

	base := u.Scheme + "://" + u.Host
	items := []any{
		map[string]any{"@type": "ListItem", "position": 1, "name": "Home", "item": base},
	}
	current := ""
	for i, segment := range segments[:len(segments)-1] {
		current += "/" + segment
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     segmentLabel(segment),
			"item":     base + current,
		})
	}
	name := headline
	if name == "" {
		name = "Current Page"
	}
	items = append(items, map[string]any{
		"@type":    "ListItem",
		"position": len(items) + 1,
		"name":     name,
		"item":     rawURL,
	})
	return map[string]any{
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func toAnySlice(in []string) []any {
	out := make([]any, 0, len(in))
	for _, v := range in {
		out = append(out, v)
	}
	return out
}
