package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	controlRe    = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
	ellipsisRe   = regexp.MustCompile(`\.{3,}`)
	bangRe       = regexp.MustCompile(`!{2,}`)
	questionRe   = regexp.MustCompile(`\?{2,}`)
)

// cleanText collapses whitespace runs, strips control characters, and
// collapses repeated punctuation.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = controlRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = ellipsisRe.ReplaceAllString(s, "...")
	s = bangRe.ReplaceAllString(s, "!")
	s = questionRe.ReplaceAllString(s, "?")
	return strings.TrimSpace(s)
}

// clamp truncates to max runes without splitting a multibyte character.
func clamp(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// readingTime renders an ISO-8601 duration at 200 words per minute, never
// below one minute.
func readingTime(wordCount int) string {
	minutes := wordCount / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("PT%dM", minutes)
}

// resolveURL makes ref absolute against base. Scheme-relative refs get
// https; anything that does not resolve to http(s) yields an empty string.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		ref = "https:" + ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(r)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

var titleCaser = cases.Title(language.English)

// DomainLabel derives a display name from the first label of the host,
// e.g. https://www.example.com/post -> "Example". The schema builder uses
// the same derivation for its publisher fallback.
func DomainLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return ""
	}
	label := host
	if i := strings.IndexByte(host, '.'); i > 0 {
		label = host[:i]
	}
	return titleCaser.String(label)
}
