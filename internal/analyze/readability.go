package analyze

import "strings"

// Readability reports the Flesch Reading Ease score and its mapped level.
type Readability struct {
	FleschScore         float64 `json:"flesch_score"`
	ReadingLevel        string  `json:"reading_level"`
	AvgSentenceLength   float64 `json:"average_sentence_length"`
	AvgSyllablesPerWord float64 `json:"average_syllables_per_word"`
	TotalSyllables      int     `json:"total_syllables"`
}

const vowels = "aeiouy"

// countSyllables approximates syllables by counting transitions from
// non-vowel to vowel, minus a silent trailing e, floored at one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 1
	}
	count := 0
	if strings.ContainsRune(vowels, rune(word[0])) {
		count++
	}
	for i := 1; i < len(word); i++ {
		if strings.ContainsRune(vowels, rune(word[i])) && !strings.ContainsRune(vowels, rune(word[i-1])) {
			count++
		}
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func readability(text string) Readability {
	words := strings.Fields(text)
	sentences := splitSentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return Readability{ReadingLevel: "Unknown"}
	}

	totalSyllables := 0
	for _, w := range words {
		totalSyllables += countSyllables(w)
	}
	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(totalSyllables) / float64(len(words))

	score := 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllables
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Readability{
		FleschScore:         round2(score),
		ReadingLevel:        readingLevel(score),
		AvgSentenceLength:   round2(avgSentenceLen),
		AvgSyllablesPerWord: round2(avgSyllables),
		TotalSyllables:      totalSyllables,
	}
}

func readingLevel(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}
