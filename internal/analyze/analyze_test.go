package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/blogschema/internal/extract"
)

func TestAnalyzeEmptyBodyReportsError(t *testing.T) {
	a := &Analyzer{}
	res := a.Analyze(context.Background(), extract.Content{URL: "https://example.com"})
	if res.Error == "" {
		t.Fatalf("expected error for empty body")
	}
	if res.ContentMetrics.WordCount != 0 {
		t.Fatalf("expected empty metrics, got %+v", res.ContentMetrics)
	}
}

func TestContentMetricsGuardsDivideByZero(t *testing.T) {
	m := contentMetrics("word")
	if m.WordCount != 1 {
		t.Fatalf("word count = %d", m.WordCount)
	}
	if m.AvgWordsPerSentence != 1 {
		t.Fatalf("avg words per sentence = %v", m.AvgWordsPerSentence)
	}
	if m.ReadingTimeMinutes != 1 {
		t.Fatalf("reading time = %d, want floor of 1", m.ReadingTimeMinutes)
	}
}

func TestKeywordAnalysisRemovesStopWordsAndWeightsTitle(t *testing.T) {
	body := "gophers build servers. gophers like concurrency and the channels."
	ka := keywordAnalysis(body, "gophers guide")

	if len(ka.TopKeywords) == 0 {
		t.Fatalf("expected keywords")
	}
	// Title appears twice, so "gophers" (2 body + 2 title) must outrank all.
	if ka.TopKeywords[0].Word != "gophers" {
		t.Fatalf("top keyword = %q", ka.TopKeywords[0].Word)
	}
	if ka.TopKeywords[0].Frequency != 4 {
		t.Fatalf("gophers frequency = %d, want 4", ka.TopKeywords[0].Frequency)
	}
	for _, kw := range ka.TopKeywords {
		if stopWords[kw.Word] {
			t.Fatalf("stop word %q leaked into keywords", kw.Word)
		}
	}
}

func TestWordFrequencyDistribution(t *testing.T) {
	body := "gophers build servers. gophers like concurrency and the channels."
	ka := keywordAnalysis(body, "gophers guide")

	if got := ka.WordFrequency["gophers"]; got != 4 {
		t.Fatalf("WordFrequency[gophers] = %d, want 4", got)
	}
	if got := ka.WordFrequency["channels"]; got != 1 {
		t.Fatalf("WordFrequency[channels] = %d, want 1", got)
	}
	if _, ok := ka.WordFrequency["the"]; ok {
		t.Fatalf("stop word leaked into frequency distribution")
	}

	// Tokens are letters only, so distinct words need letter suffixes.
	var words []string
	for i := 0; i < 60; i++ {
		words = append(words, fmt.Sprintf("word%c%c", 'a'+i/26, 'a'+i%26))
	}
	wide := keywordAnalysis(strings.Join(words, " "), "")
	if len(wide.WordFrequency) != 50 {
		t.Fatalf("distribution size = %d, want 50", len(wide.WordFrequency))
	}
}

func TestPhrasesExcludeStopWordMembers(t *testing.T) {
	phrases := extractPhrases("the quick brown fox and the lazy dog")
	for _, p := range phrases {
		for _, w := range strings.Fields(p) {
			if stopWords[w] {
				t.Fatalf("phrase %q contains stop word %q", p, w)
			}
		}
	}
	// "quick brown" and "brown fox" windows plus "quick brown fox".
	want := map[string]bool{"quick brown": true, "brown fox": true, "lazy dog": true, "quick brown fox": true}
	for _, p := range phrases {
		if !want[p] {
			t.Fatalf("unexpected phrase %q", p)
		}
	}
}

func TestFleschScoreClamped(t *testing.T) {
	cases := []string{
		"zzzzxxxqqq zzxxqq zxq.",                // all-consonant words
		"a.",                                    // single short word
		strings.Repeat("antidisestablishmentarianism ", 40) + ".", // syllable-heavy
	}
	for _, text := range cases {
		r := readability(text)
		if r.FleschScore < 0 || r.FleschScore > 100 {
			t.Errorf("flesch score %v out of [0,100] for %q", r.FleschScore, text)
		}
	}
}

func TestReadingLevelBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "Very Easy"},
		{85, "Easy"},
		{75, "Fairly Easy"},
		{65, "Standard"},
		{55, "Fairly Difficult"},
		{40, "Difficult"},
		{10, "Very Difficult"},
	}
	for _, tc := range cases {
		if got := readingLevel(tc.score); got != tc.want {
			t.Errorf("readingLevel(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"the", 1},  // silent trailing e, floored at 1
		{"zzz", 1},  // all consonants still count as one syllable
		{"open", 2}, // leading vowel adds one
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word); got != tc.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestHeadingHierarchySkipDetected(t *testing.T) {
	bad := []extract.Heading{{Level: 1, Text: "a"}, {Level: 3, Text: "b"}}
	if properHierarchy(bad) {
		t.Fatalf("h1 -> h3 should be flagged")
	}
	good := []extract.Heading{{Level: 1, Text: "a"}, {Level: 2, Text: "b"}, {Level: 2, Text: "c"}}
	if !properHierarchy(good) {
		t.Fatalf("h1 -> h2 -> h2 should be valid")
	}
	if !properHierarchy(nil) {
		t.Fatalf("empty heading list is trivially valid")
	}
}

func TestStructureLinkRatios(t *testing.T) {
	links := []extract.Link{
		{URL: "https://example.com/a", Internal: true},
		{URL: "https://example.com/b", Internal: true},
		{URL: "https://other.org/c", Internal: false},
		{URL: "https://other.org/d", Internal: false},
	}
	s := structureAnalysis(nil, links)
	if s.InternalLinks != 2 || s.ExternalLinks != 2 {
		t.Fatalf("link counts: %+v", s)
	}
	if s.InternalRatio != 0.5 || s.ExternalRatio != 0.5 {
		t.Fatalf("link ratios: %+v", s)
	}
}

func TestSEOScoreWeights(t *testing.T) {
	body := strings.Repeat("relevant keyword content sentence here today. ", 60) // ~360 words
	c := extract.Content{
		URL:         "https://example.com/blog/post",
		Headline:    "A keyword rich headline of optimal size",          // 39 chars, contains "keyword"
		Description: strings.Repeat("x", 100) + " keyword description.", // 121 chars
		BodyText:    body,
		WordCount:   len(strings.Fields(body)),
		Categories:  []string{"keyword"},
		Headings:    []extract.Heading{{Level: 1, Text: "h"}},
		Image:       &extract.Image{URL: "https://example.com/i.png"},
	}
	s := seoAnalysis(c, KeywordAnalysis{})
	if s.Score != 100 {
		t.Fatalf("score = %v, want 100 with every check passing (%+v)", s.Score, s)
	}

	// Dropping the image removes exactly its 10-point weight.
	c.Image = nil
	s = seoAnalysis(c, KeywordAnalysis{})
	if s.Score != 90 {
		t.Fatalf("score = %v, want 90 without image", s.Score)
	}
}

func TestSlug(t *testing.T) {
	if got := Slug("Hello, World! A Go Story"); got != "hello-world-a-go-story" {
		t.Fatalf("slug = %q", got)
	}
}

type stubLLM struct {
	content string
	err     error
}

func (s *stubLLM) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: s.content}}},
	}, nil
}

func TestModelInsightsParsesJSON(t *testing.T) {
	m := &ModelInsights{Model: "test-model", Client: &stubLLM{content: "```json\n" +
		`{"main_topics":["go"],"target_audience":"developers","sentiment":"positive",` +
		`"improvements":["shorter intro"],"keyword_suggestions":["golang"]}` + "\n```"}}
	ins, err := m.Summarize(context.Background(), "t", "b")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if ins.TargetAudience != "developers" || len(ins.MainTopics) != 1 {
		t.Fatalf("insights = %+v", ins)
	}
}

func TestModelInsightsFallsBackOnGarbage(t *testing.T) {
	m := &ModelInsights{Model: "test-model", Client: &stubLLM{content: "sorry, I cannot help with that"}}
	ins, err := m.Summarize(context.Background(), "t", "b")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if ins.TargetAudience != "General audience" {
		t.Fatalf("expected fallback payload, got %+v", ins)
	}
}

func TestAnalyzeSubstitutesFallbackOnTransportError(t *testing.T) {
	a := &Analyzer{Insights: &ModelInsights{Model: "m", Client: &stubLLM{err: errors.New("connection refused")}}}
	res := a.Analyze(context.Background(), extract.Content{
		URL:      "https://example.com",
		BodyText: "some body text for analysis purposes here",
	})
	if res.AIInsights == nil || res.AIInsights.TargetAudience != "General audience" {
		t.Fatalf("expected fallback insights, got %+v", res.AIInsights)
	}
	if res.Error != "" {
		t.Fatalf("enrichment failure must not fail analysis: %q", res.Error)
	}
}
