package analyze

import (
	"math"
	"regexp"
	"strings"
)

// ContentMetrics are simple counts over the body text.
type ContentMetrics struct {
	WordCount             int     `json:"word_count"`
	SentenceCount         int     `json:"sentence_count"`
	ParagraphCount        int     `json:"paragraph_count"`
	AvgWordsPerSentence   float64 `json:"average_words_per_sentence"`
	AvgSentencesPerPara   float64 `json:"average_sentences_per_paragraph"`
	CharacterCount        int     `json:"character_count"`
	CharacterCountNoSpace int     `json:"character_count_no_spaces"`
	ReadingTimeMinutes    int     `json:"reading_time_minutes"`
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func contentMetrics(text string) ContentMetrics {
	words := strings.Fields(text)
	sentences := splitSentences(text)
	paragraphs := splitParagraphs(text)

	readingTime := len(words) / 200
	if readingTime < 1 {
		readingTime = 1
	}

	return ContentMetrics{
		WordCount:             len(words),
		SentenceCount:         len(sentences),
		ParagraphCount:        len(paragraphs),
		AvgWordsPerSentence:   round2(float64(len(words)) / float64(atLeast1(len(sentences)))),
		AvgSentencesPerPara:   round2(float64(len(sentences)) / float64(atLeast1(len(paragraphs)))),
		CharacterCount:        len(text),
		CharacterCountNoSpace: len(strings.ReplaceAll(text, " ", "")),
		ReadingTimeMinutes:    readingTime,
	}
}

func atLeast1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
