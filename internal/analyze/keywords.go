package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// KeywordAnalysis reports frequency-ranked keywords and stop-word-free
// 2- and 3-word phrases.
type KeywordAnalysis struct {
	TotalUniqueWords int            `json:"total_unique_words"`
	KeywordDensity   float64        `json:"keyword_density"`
	TopKeywords      []Keyword      `json:"top_keywords"`
	TopPhrases       []Phrase       `json:"top_phrases"`
	WordFrequency    map[string]int `json:"word_frequency_distribution"`
}

type Keyword struct {
	Word           string  `json:"word"`
	Frequency      int     `json:"frequency"`
	RelevanceScore float64 `json:"relevance_score"`
}

type Phrase struct {
	Phrase         string  `json:"phrase"`
	Frequency      int     `json:"frequency"`
	RelevanceScore float64 `json:"relevance_score"`
}

var wordRe = regexp.MustCompile(`[a-zA-Z]{3,}`)

// stopWords is the fixed function-word set removed before ranking.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true,
	"among": true, "amongst": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true, "me": true,
	"him": true, "her": true, "us": true, "them": true, "my": true,
	"your": true, "his": true, "its": true, "our": true, "their": true,
	"this": true, "that": true, "these": true, "those": true, "am": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"can": true, "shall": true,
}

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// keywordAnalysis ranks keywords over the title (double weight) plus body,
// and phrases over the body alone.
func keywordAnalysis(body, title string) KeywordAnalysis {
	weighted := title + " " + title + " " + body
	words := tokenize(weighted)

	var filtered []string
	for _, w := range words {
		if !stopWords[w] {
			filtered = append(filtered, w)
		}
	}

	freq := map[string]int{}
	for _, w := range filtered {
		freq[w]++
	}

	phrases := extractPhrases(body)
	phraseFreq := map[string]int{}
	for _, p := range phrases {
		phraseFreq[p]++
	}

	ka := KeywordAnalysis{
		TotalUniqueWords: len(freq),
	}
	if len(words) > 0 {
		ka.KeywordDensity = round2(float64(len(filtered)) / float64(len(words)))
	}
	for _, w := range topN(freq, 20) {
		ka.TopKeywords = append(ka.TopKeywords, Keyword{
			Word:           w,
			Frequency:      freq[w],
			RelevanceScore: round4(float64(freq[w]) / float64(atLeast1(len(filtered)))),
		})
	}
	for _, p := range topN(phraseFreq, 10) {
		ka.TopPhrases = append(ka.TopPhrases, Phrase{
			Phrase:         p,
			Frequency:      phraseFreq[p],
			RelevanceScore: round4(float64(phraseFreq[p]) / float64(atLeast1(len(phrases)))),
		})
	}
	if len(freq) > 0 {
		dist := make(map[string]int)
		for _, w := range topN(freq, 50) {
			dist[w] = freq[w]
		}
		ka.WordFrequency = dist
	}
	return ka
}

// extractPhrases collects contiguous 2- and 3-word windows where no member
// is a stop word.
func extractPhrases(text string) []string {
	words := tokenize(text)
	var phrases []string
	for i := 0; i+1 < len(words); i++ {
		if !stopWords[words[i]] && !stopWords[words[i+1]] {
			phrases = append(phrases, words[i]+" "+words[i+1])
		}
	}
	for i := 0; i+2 < len(words); i++ {
		if !stopWords[words[i]] && !stopWords[words[i+1]] && !stopWords[words[i+2]] {
			phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
		}
	}
	return phrases
}

// topN ranks by frequency descending, ties broken alphabetically so that
// repeated runs over identical input stay deterministic.
func topN(freq map[string]int, n int) []string {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func round4(f float64) float64 {
	return float64(int(f*10000+0.5)) / 10000
}
