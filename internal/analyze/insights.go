package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/blogschema/internal/llm"
)

// Insights is the free-form enrichment payload returned by the text
// generation collaborator.
type Insights struct {
	MainTopics         []string `json:"main_topics"`
	TargetAudience     string   `json:"target_audience"`
	Sentiment          string   `json:"sentiment"`
	Improvements       []string `json:"improvements"`
	KeywordSuggestions []string `json:"keyword_suggestions"`
}

// InsightsClient is the pluggable enrichment capability. Implementations
// must not fail the pipeline: a transport error is the only error allowed
// out, and callers substitute the fallback payload for it.
type InsightsClient interface {
	Summarize(ctx context.Context, title, body string) (Insights, error)
}

// maxInsightChars bounds the body prefix sent to the model.
const maxInsightChars = 3000

// ModelInsights calls an OpenAI-compatible chat model.
type ModelInsights struct {
	Client llm.Client
	Model  string
}

const insightsPrompt = `Analyze this blog post and provide insights.

Title: %s
Content: %s

Respond with a single JSON object with these keys:
"main_topics" (max 5 strings), "target_audience" (string),
"sentiment" ("positive", "neutral" or "negative"),
"improvements" (max 3 strings), "keyword_suggestions" (max 10 strings).
Respond with JSON only, no prose.`

func (m *ModelInsights) Summarize(ctx context.Context, title, body string) (Insights, error) {
	if m.Client == nil || strings.TrimSpace(m.Model) == "" {
		return Insights{}, errors.New("insights client not configured")
	}
	if len(body) > maxInsightChars {
		body = body[:maxInsightChars] + "..."
	}
	req := openai.ChatCompletionRequest{
		Model: m.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(insightsPrompt, title, body)},
		},
		Temperature: 0.1,
		N:           1,
	}
	resp, err := m.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Insights{}, fmt.Errorf("insights call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return FallbackInsights(), nil
	}
	// Non-JSON output degrades to the fixed generic payload.
	out, ok := parseInsightsJSON(resp.Choices[0].Message.Content)
	if !ok {
		return FallbackInsights(), nil
	}
	return out, nil
}

// parseInsightsJSON tolerates code fences and surrounding prose around the
// JSON object.
func parseInsightsJSON(raw string) (Insights, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '{'); i >= 0 {
		if j := strings.LastIndexByte(raw, '}'); j > i {
			raw = raw[i : j+1]
		}
	}
	var out Insights
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Insights{}, false
	}
	if len(out.MainTopics) == 0 && out.TargetAudience == "" && out.Sentiment == "" {
		return Insights{}, false
	}
	return out, true
}

// FallbackInsights is the fixed payload substituted whenever enrichment
// fails or returns something unusable.
func FallbackInsights() Insights {
	return Insights{
		MainTopics:         []string{"Content analysis", "Blog optimization"},
		TargetAudience:     "General audience",
		Sentiment:          "neutral",
		Improvements:       []string{"Add more headings", "Include more keywords", "Optimize length"},
		KeywordSuggestions: []string{"blog", "content", "analysis", "optimization", "SEO"},
	}
}
