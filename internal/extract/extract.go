package extract

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// Content is the flat record produced by the extractor and consumed by the
// analyzer and the schema builder. Absent optional fields are nil pointers;
// absent strings are empty, never null.
type Content struct {
	URL           string     `json:"url"`
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	BodyText      string     `json:"bodyText"`
	DatePublished string     `json:"datePublished"`
	DateModified  string     `json:"dateModified"`
	Author        *Author    `json:"author,omitempty"`
	Publisher     Publisher  `json:"publisher"`
	Image         *Image     `json:"image,omitempty"`
	WordCount     int        `json:"wordCount"`
	Categories    []string   `json:"categories,omitempty"`
	IsPartOf      *Blog      `json:"isPartOf,omitempty"`
	ReadingTime   string     `json:"readingTime"`
	Headings      []Heading  `json:"headings,omitempty"`
	Links         []Link     `json:"links,omitempty"`
}

// Author requires both a name and a URL; a partial match is treated as no
// author at all since the schema builder branches on presence.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Publisher is always present; Name falls back to a label derived from the
// domain when the page carries no better signal.
type Publisher struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo Logo   `json:"logo"`
}

type Logo struct {
	URL string `json:"url"`
}

type Image struct {
	URL string `json:"url"`
}

// Blog points at the inferred blog index page the post belongs to.
type Blog struct {
	URL string `json:"url"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Link struct {
	URL      string `json:"url"`
	Internal bool   `json:"is_internal"`
}

// maxBodyChars caps stored body text. Word count is computed after the cap
// so it always matches the whitespace-token count of BodyText.
const maxBodyChars = 50000

// Parse decodes raw page bytes to UTF-8 using the Content-Type hint and any
// in-document markers, then builds a goquery document.
func Parse(data []byte, contentType string) (*goquery.Document, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// Fall back to the raw bytes when they already look like UTF-8.
		if !utf8.Valid(data) {
			return nil, err
		}
		decoded = data
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(decoded))
}

// Extractor runs the per-field selector cascades. The zero value is ready to use.
type Extractor struct{}

// FromDocument extracts a Content record from a parsed document. Every field
// lookup is independently guarded: a failure in one cascade logs a warning
// and leaves that field empty without disturbing the others.
func (e *Extractor) FromDocument(doc *goquery.Document, baseURL string) Content {
	c := Content{URL: baseURL}

	guard("headline", func() { c.Headline = extractHeadline(doc) })
	guard("description", func() { c.Description = extractDescription(doc) })
	guard("dates", func() { c.DatePublished, c.DateModified = extractDates(doc) })
	guard("author", func() { c.Author = extractAuthor(doc, baseURL) })
	guard("publisher", func() { c.Publisher = extractPublisher(doc, baseURL) })
	guard("image", func() { c.Image = extractImage(doc, baseURL) })
	guard("body", func() { c.BodyText = extractBody(doc) })
	guard("categories", func() { c.Categories = extractCategories(doc) })
	guard("isPartOf", func() { c.IsPartOf = inferBlogIndex(baseURL) })
	guard("headings", func() { c.Headings = extractHeadings(doc) })
	guard("links", func() { c.Links = extractLinks(doc, baseURL) })

	if utf8.RuneCountInString(c.BodyText) > maxBodyChars {
		c.BodyText = clamp(c.BodyText, maxBodyChars)
	}
	c.WordCount = len(strings.Fields(c.BodyText))
	c.ReadingTime = readingTime(c.WordCount)
	return c
}

// Degenerate is the minimal record returned when extraction cannot run at
// all, e.g. the page failed to parse before any field lookup.
func Degenerate(rawURL string) Content {
	return Content{
		URL:         rawURL,
		Publisher:   Publisher{Name: "Unknown", URL: siteRoot(rawURL)},
		ReadingTime: readingTime(0),
	}
}

func guard(field string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("field", field).Interface("cause", r).Msg("field extraction failed")
		}
	}()
	f()
}

func siteRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
