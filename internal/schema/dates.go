package schema

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeDate renders a raw extracted date string as ISO-8601. Strings
// that already carry a time and timezone marker pass through untouched;
// everything else goes through general date parsing with a UTC default.
// Total parse failure substitutes the current time.
func normalizeDate(raw string, now func() time.Time) string {
	raw = strings.TrimSpace(raw)
	if looksISO(raw) {
		return raw
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return now().UTC().Format(time.RFC3339)
	}
	return t.Format(time.RFC3339)
}

func looksISO(s string) bool {
	if !strings.Contains(s, "T") {
		return false
	}
	if strings.HasSuffix(s, "Z") {
		return true
	}
	// Timezone offset in the last six characters, e.g. +02:00 or -0500.
	tail := s
	if len(s) > 6 {
		tail = s[len(s)-6:]
	}
	return strings.ContainsAny(tail, "+") || strings.Contains(tail, "-") && strings.Contains(s, ":")
}

var segmentCaser = cases.Title(language.English)

// segmentLabel turns a URL path segment into a breadcrumb label:
// hyphens and underscores become spaces, words are title-cased.
func segmentLabel(segment string) string {
	s := strings.ReplaceAll(segment, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return segmentCaser.String(s)
}

// clampRunes truncates to max runes without splitting multibyte characters.
func clampRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}
