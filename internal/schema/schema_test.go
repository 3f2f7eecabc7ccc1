package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/blogschema/internal/analyze"
	"github.com/hyperifyio/blogschema/internal/extract"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func sampleContent() extract.Content {
	return extract.Content{
		URL:           "https://example.com/blog/go-testing-guide",
		Headline:      "A Guide to Testing in Go",
		Description:   "Everything you need to know about writing tests in Go.",
		BodyText:      strings.Repeat("testing in go is great ", 80),
		DatePublished: "2024-03-01T10:00:00Z",
		Author:        &extract.Author{Name: "Jane Doe", URL: "https://example.com/authors/jane"},
		Publisher:     extract.Publisher{Name: "Example", URL: "https://example.com"},
		Image:         &extract.Image{URL: "https://example.com/hero.png"},
		WordCount:     400,
		Categories:    []string{"go", "testing"},
		ReadingTime:   "PT2M",
	}
}

func TestBuildTruncatesHeadlineAndDescription(t *testing.T) {
	b := &Builder{Now: fixedNow}
	c := sampleContent()
	c.Headline = strings.Repeat("H", 200)
	c.Description = strings.Repeat("d", 300)

	s := b.Build(c, nil)
	headline, _ := s["headline"].(string)
	if len(headline) != 110 {
		t.Fatalf("headline length = %d, want 110", len(headline))
	}
	description, _ := s["description"].(string)
	if len(description) != 160 {
		t.Fatalf("description length = %d, want 160", len(description))
	}
}

func TestArticleBodyTruncatesByRunes(t *testing.T) {
	b := &Builder{Now: fixedNow}

	// 3000 two-byte runes: over 5000 bytes but under the rune limit.
	c := sampleContent()
	c.BodyText = strings.Repeat("ä", 3000)
	s := b.Build(c, nil)
	if body, _ := s["articleBody"].(string); body != c.BodyText {
		t.Fatalf("body under the rune limit was truncated")
	}

	c.BodyText = strings.Repeat("ä", 5200)
	s = b.Build(c, nil)
	body, _ := s["articleBody"].(string)
	if !strings.HasSuffix(body, "...") {
		t.Fatalf("long body missing ellipsis")
	}
	if got := len([]rune(strings.TrimSuffix(body, "..."))); got != 5000 {
		t.Fatalf("truncated body runes = %d, want 5000", got)
	}
}

func TestBuildAddsContentLocation(t *testing.T) {
	b := &Builder{Now: fixedNow}
	s := b.Build(sampleContent(), nil)

	loc, ok := s["contentLocation"].(map[string]any)
	if !ok {
		t.Fatalf("contentLocation missing: %v", s["contentLocation"])
	}
	if loc["@type"] != "Place" || loc["url"] != "https://example.com/blog/go-testing-guide" {
		t.Fatalf("contentLocation = %v", loc)
	}
}

func TestBuildOmitsAbsentAuthorAndImage(t *testing.T) {
	b := &Builder{Now: fixedNow}
	c := sampleContent()
	c.Author = nil
	c.Image = nil

	s := b.Build(c, nil)
	if _, ok := s["author"]; ok {
		t.Fatalf("author must be omitted when absent, got %v", s["author"])
	}
	if _, ok := s["image"]; ok {
		t.Fatalf("image must be omitted when absent")
	}
	// Publisher is always present.
	pub, ok := s["publisher"].(map[string]any)
	if !ok || pub["name"] == "" {
		t.Fatalf("publisher missing or empty: %v", s["publisher"])
	}
}

func TestBuildDateNormalization(t *testing.T) {
	b := &Builder{Now: fixedNow}

	cases := []struct {
		in, want string
	}{
		{"2024-03-01T10:00:00Z", "2024-03-01T10:00:00Z"},       // ISO passthrough
		{"2024-03-01T10:00:00+02:00", "2024-03-01T10:00:00+02:00"},
		{"March 1, 2024", "2024-03-01T00:00:00Z"},              // general parsing, UTC default
		{"total garbage date", "2024-06-01T12:00:00Z"},         // fallback to now
	}
	for _, tc := range cases {
		c := sampleContent()
		c.DatePublished = tc.in
		s := b.Build(c, nil)
		if got := s["datePublished"]; got != tc.want {
			t.Errorf("datePublished(%q) = %v, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildKeywordMergeDeduplicates(t *testing.T) {
	b := &Builder{Now: fixedNow}
	c := sampleContent()
	c.Categories = []string{"seo", "content"}
	a := &analyze.Result{
		KeywordAnalysis: analyze.KeywordAnalysis{
			TopKeywords: []analyze.Keyword{{Word: "seo"}, {Word: "blog"}},
		},
	}

	s := b.Build(c, a)
	keywords, ok := s["keywords"].([]any)
	if !ok {
		t.Fatalf("keywords missing: %v", s["keywords"])
	}
	if len(keywords) != 3 {
		t.Fatalf("keywords = %v, want deduplicated set of 3", keywords)
	}
	seen := map[string]bool{}
	for _, kw := range keywords {
		seen[kw.(string)] = true
	}
	for _, want := range []string{"seo", "content", "blog"} {
		if !seen[want] {
			t.Fatalf("missing keyword %q in %v", want, keywords)
		}
	}
}

func TestBreadcrumb(t *testing.T) {
	crumb := breadcrumb("https://example.com/blog/tech-news/my-post", "My Post")
	if crumb == nil {
		t.Fatalf("expected breadcrumb for 3-segment path")
	}
	items := crumb["itemListElement"].([]any)
	if len(items) != 4 {
		t.Fatalf("items = %d, want 4 (home + 2 intermediates + page)", len(items))
	}
	first := items[0].(map[string]any)
	if first["name"] != "Home" || first["item"] != "https://example.com" {
		t.Fatalf("first item = %v", first)
	}
	second := items[1].(map[string]any)
	if second["name"] != "Blog" {
		t.Fatalf("second item name = %v", second["name"])
	}
	third := items[2].(map[string]any)
	if third["name"] != "Tech News" {
		t.Fatalf("hyphenated segment label = %v, want 'Tech News'", third["name"])
	}
	last := items[3].(map[string]any)
	if last["name"] != "My Post" {
		t.Fatalf("final item should use the headline, got %v", last["name"])
	}

	if breadcrumb("https://example.com/only-one", "x") != nil {
		t.Fatalf("single-segment path must not produce breadcrumbs")
	}
}

func TestPruneRemovesEmptiesDepthFirst(t *testing.T) {
	in := map[string]any{
		"keep":   "value",
		"empty":  "",
		"nilval": nil,
		"nested": map[string]any{
			"inner": map[string]any{"blank": ""},
		},
		"list":  []any{"", nil, "x"},
		"zero":  0,
		"false": false,
	}
	out := pruneMap(in)
	if _, ok := out["empty"]; ok {
		t.Fatalf("empty string survived pruning")
	}
	if _, ok := out["nilval"]; ok {
		t.Fatalf("nil survived pruning")
	}
	if _, ok := out["nested"]; ok {
		t.Fatalf("recursively emptied object survived pruning: %v", out["nested"])
	}
	list, _ := out["list"].([]any)
	if len(list) != 1 || list[0] != "x" {
		t.Fatalf("list pruning wrong: %v", out["list"])
	}
	if out["zero"] != 0 || out["false"] != false {
		t.Fatalf("zero values must be kept: %v", out)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	b := &Builder{Now: fixedNow}
	s := b.Build(sampleContent(), nil)

	raw, err := MarshalIndented(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Normalize through a second marshal since JSON numbers come back as
	// float64; structural equality is what matters.
	raw2, err := MarshalIndented(back)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(raw) != string(raw2) {
		t.Fatalf("round trip lost information:\n%s\n---\n%s", raw, raw2)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	b := &Builder{Now: fixedNow}
	c := sampleContent()
	a := &analyze.Result{
		KeywordAnalysis: analyze.KeywordAnalysis{
			TopKeywords: []analyze.Keyword{{Word: "go"}, {Word: "tests"}},
		},
	}

	first, err := MarshalIndented(b.Build(c, a))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := MarshalIndented(b.Build(c, a))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("repeated builds differ:\n%s\n---\n%s", first, second)
	}
}

func TestMarshalPreservesNonASCII(t *testing.T) {
	b := &Builder{Now: fixedNow}
	c := sampleContent()
	c.Headline = "Go für Anfänger: Tips & Tricks"

	raw, err := MarshalIndented(b.Build(c, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), "für Anfänger") {
		t.Fatalf("non-ASCII characters were escaped: %s", raw)
	}
	if !strings.Contains(string(raw), "Tips & Tricks") {
		t.Fatalf("HTML escaping should be disabled: %s", raw)
	}
}

func TestHTMLScriptTag(t *testing.T) {
	b := &Builder{Now: fixedNow}
	out, err := HTMLScriptTag(b.Build(sampleContent(), nil))
	if err != nil {
		t.Fatalf("script tag: %v", err)
	}
	if !strings.HasPrefix(out, `<script type="application/ld+json">`) || !strings.HasSuffix(out, "</script>") {
		t.Fatalf("malformed script tag:\n%s", out)
	}
}

func TestMinimalSchema(t *testing.T) {
	b := &Builder{Now: fixedNow}
	s := b.Minimal(extract.Content{URL: "https://example.com/p"})
	if s["headline"] != "Blog Post" {
		t.Fatalf("headline = %v", s["headline"])
	}
	author := s["author"].(map[string]any)
	if author["name"] != "Unknown Author" {
		t.Fatalf("author = %v", author)
	}
	if s["datePublished"] != "2024-06-01T12:00:00Z" {
		t.Fatalf("datePublished = %v", s["datePublished"])
	}
}

func TestSiteConfigEnrichesAuthorAndPublisher(t *testing.T) {
	b := &Builder{
		Now: fixedNow,
		Site: SiteConfig{
			Author: AuthorProfile{
				JobTitle: "Staff Engineer",
				WorksFor: "Example Corp",
				SameAs:   []string{"https://social.example/jane"},
			},
			Publisher: PublisherProfile{
				Name: "Example Media",
				Logo: "https://example.com/logo.png",
			},
		},
	}
	s := b.Build(sampleContent(), nil)

	author := s["author"].(map[string]any)
	if author["jobTitle"] != "Staff Engineer" {
		t.Fatalf("author = %v", author)
	}
	worksFor := author["worksFor"].(map[string]any)
	if worksFor["name"] != "Example Corp" {
		t.Fatalf("worksFor = %v", worksFor)
	}

	pub := s["publisher"].(map[string]any)
	if pub["name"] != "Example Media" {
		t.Fatalf("publisher = %v", pub)
	}
	logo := pub["logo"].(map[string]any)
	if logo["width"] != 600 || logo["height"] != 60 {
		t.Fatalf("logo defaults = %v", logo)
	}
}

func TestValidate(t *testing.T) {
	b := &Builder{Now: fixedNow}
	v := Validate(b.Build(sampleContent(), nil))
	if !v.Valid {
		t.Fatalf("complete schema should validate: %+v", v)
	}

	v = Validate(map[string]any{"@context": schemaContext, "@type": "BlogPosting"})
	if v.Valid {
		t.Fatalf("missing required fields should fail validation")
	}
	found := false
	for _, e := range v.Errors {
		if strings.Contains(e, "author") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing-author error, got %v", v.Errors)
	}

	v = Validate(map[string]any{
		"@context": schemaContext, "@type": "BlogPosting",
		"headline": "x", "author": map[string]any{}, "publisher": map[string]any{},
		"url": "https://example.com", "datePublished": "not-a-date",
	})
	if v.Valid {
		t.Fatalf("unparseable datePublished should fail validation")
	}
}
