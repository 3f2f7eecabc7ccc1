package analyze

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogschema/internal/extract"
)

// Result bundles the independent sub-reports computed from extracted
// content. Each report derives only from the Content record; there are no
// cross-references between them.
type Result struct {
	ContentMetrics  ContentMetrics  `json:"content_metrics"`
	KeywordAnalysis KeywordAnalysis `json:"keyword_analysis"`
	Readability     Readability     `json:"readability"`
	Structure       Structure       `json:"structure_analysis"`
	SEO             SEO             `json:"seo_analysis"`
	AIInsights      *Insights       `json:"ai_insights,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Analyzer computes derived statistics. Insights is optional; when nil the
// AI enrichment path is skipped entirely.
type Analyzer struct {
	Insights InsightsClient
}

// Analyze never fails: any panic during analysis degrades to an empty
// result carrying an error message.
func (a *Analyzer) Analyze(ctx context.Context, c extract.Content) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("cause", r).Msg("content analysis failed")
			res = Result{Error: fmt.Sprintf("analysis error: %v", r)}
		}
	}()

	if c.BodyText == "" {
		return Result{Error: "no content to analyze"}
	}

	res = Result{
		ContentMetrics:  contentMetrics(c.BodyText),
		KeywordAnalysis: keywordAnalysis(c.BodyText, c.Headline),
		Readability:     readability(c.BodyText),
		Structure:       structureAnalysis(c.Headings, c.Links),
	}
	res.SEO = seoAnalysis(c, res.KeywordAnalysis)

	if a.Insights != nil {
		ins, err := a.Insights.Summarize(ctx, c.Headline, c.BodyText)
		if err != nil {
			log.Warn().Err(err).Msg("AI enrichment failed; using fallback payload")
			ins = FallbackInsights()
		}
		res.AIInsights = &ins
	}
	return res
}
