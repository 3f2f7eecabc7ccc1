package extract

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func extractHeadline(doc *goquery.Document) string {
	for _, sel := range headlineSelectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return clamp(text, 200)
		}
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	for _, sel := range descriptionMetaSelectors {
		if v := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); v != "" {
			return clamp(cleanText(v), 300)
		}
	}
	for _, sel := range descriptionTextSelectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return clamp(text, 300)
		}
	}
	return ""
}

// extractDates returns the published and modified date strings exactly as
// found; normalization to ISO-8601 happens at the schema boundary.
func extractDates(doc *goquery.Document) (published, modified string) {
	published = firstDate(doc, publishedMetaSelectors, publishedTextSelectors)
	modified = firstDate(doc, modifiedMetaSelectors, nil)
	return published, modified
}

func firstDate(doc *goquery.Document, metaSelectors, textSelectors []string) string {
	for _, sel := range metaSelectors {
		if v := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(doc.Find("time[datetime]").First().AttrOr("datetime", "")); v != "" {
		return v
	}
	for _, sel := range textSelectors {
		if v := cleanText(doc.Find(sel).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

// extractAuthor requires both a non-empty name and href before accepting an
// anchor, then falls back to embedded JSON-LD blocks. A partial signal yields
// no author at all.
func extractAuthor(doc *goquery.Document, baseURL string) *Author {
	var found *Author
	for _, sel := range authorSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			name := cleanText(s.Text())
			href := strings.TrimSpace(s.AttrOr("href", ""))
			if name == "" || href == "" {
				return true
			}
			if resolved := resolveURL(baseURL, href); resolved != "" {
				found = &Author{Name: name, URL: resolved}
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return authorFromJSONLD(doc)
}

// authorFromJSONLD treats ld+json blocks as opaque nested JSON and looks for
// an author node carrying both name and url.
func authorFromJSONLD(doc *goquery.Document) *Author {
	var found *Author
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return true
		}
		if a := findJSONAuthor(v); a != nil {
			found = a
			return false
		}
		return true
	})
	return found
}

func findJSONAuthor(v any) *Author {
	switch t := v.(type) {
	case map[string]any:
		if raw, ok := t["author"]; ok {
			if a := authorNode(raw); a != nil {
				return a
			}
		}
		if graph, ok := t["@graph"]; ok {
			return findJSONAuthor(graph)
		}
	case []any:
		for _, item := range t {
			if a := findJSONAuthor(item); a != nil {
				return a
			}
		}
	}
	return nil
}

func authorNode(v any) *Author {
	switch t := v.(type) {
	case map[string]any:
		name, _ := t["name"].(string)
		u, _ := t["url"].(string)
		name = cleanText(name)
		u = strings.TrimSpace(u)
		if name != "" && u != "" {
			return &Author{Name: name, URL: u}
		}
	case []any:
		for _, item := range t {
			if a := authorNode(item); a != nil {
				return a
			}
		}
	}
	return nil
}

func extractPublisher(doc *goquery.Document, baseURL string) Publisher {
	p := Publisher{URL: siteRoot(baseURL)}
	for _, sel := range siteNameMetaSelectors {
		if v := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); v != "" {
			p.Name = v
			break
		}
	}
	if p.Name == "" {
		for _, sel := range siteTitleSelectors {
			if text := cleanText(doc.Find(sel).First().Text()); text != "" {
				p.Name = text
				break
			}
		}
	}
	if p.Name == "" {
		p.Name = DomainLabel(baseURL)
	}
	if p.Name == "" {
		p.Name = "Unknown"
	}
	for _, sel := range logoSelectors {
		src := strings.TrimSpace(doc.Find(sel).First().AttrOr("src", ""))
		if src == "" {
			continue
		}
		if resolved := resolveURL(baseURL, src); resolved != "" {
			p.Logo = Logo{URL: resolved}
			break
		}
	}
	return p
}

func extractImage(doc *goquery.Document, baseURL string) *Image {
	for _, sel := range imageMetaSelectors {
		if v := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); v != "" {
			if resolved := resolveURL(baseURL, v); resolved != "" {
				return &Image{URL: resolved}
			}
		}
	}
	for _, sel := range imageElementSelectors {
		src := strings.TrimSpace(doc.Find(sel).First().AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(doc.Find(sel).First().AttrOr("data-src", ""))
		}
		if src == "" {
			continue
		}
		if resolved := resolveURL(baseURL, src); resolved != "" {
			return &Image{URL: resolved}
		}
	}
	return nil
}

// extractBody walks the content-container cascade, stripping non-content
// subtrees before measuring. When no candidate clears the 200-character
// minimum it falls back to <article> and <body> with a relaxed threshold and
// script/style-only stripping.
func extractBody(doc *goquery.Document) string {
	for _, sel := range bodySelectors {
		if text := containerText(doc, sel, nonContent); runeLen(text) > 200 {
			return text
		}
	}
	for _, sel := range []string{"article", "body"} {
		if text := containerText(doc, sel, scriptsOnly); runeLen(text) > 100 {
			return text
		}
	}
	return containerText(doc, "body", scriptsOnly)
}

func containerText(doc *goquery.Document, sel, strip string) string {
	node := doc.Find(sel).First()
	if node.Length() == 0 {
		return ""
	}
	clone := node.Clone()
	clone.Find(strip).Remove()
	return cleanText(clone.Text())
}

func extractCategories(doc *goquery.Document) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = cleanText(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] || len(out) >= 10 {
			return
		}
		seen[key] = true
		out = append(out, v)
	}
	if kw := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); kw != "" {
		for _, part := range strings.Split(kw, ",") {
			add(part)
		}
	}
	for _, sel := range categorySelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			add(s.Text())
		})
	}
	return out
}

// inferBlogIndex points at the blog index page when the URL path starts with
// a recognizable listing segment, e.g. /blog/my-post -> /blog.
func inferBlogIndex(rawURL string) *Blog {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	segments := splitPath(u.Path)
	if len(segments) < 2 || !blogIndexSegments[strings.ToLower(segments[0])] {
		return nil
	}
	return &Blog{URL: u.Scheme + "://" + u.Host + "/" + segments[0]}
}

func extractHeadings(doc *goquery.Document) []Heading {
	var out []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		out = append(out, Heading{Level: int(name[1] - '0'), Text: text})
	})
	return out
}

func extractLinks(doc *goquery.Document, baseURL string) []Link {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	var out []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		resolved := resolveURL(baseURL, s.AttrOr("href", ""))
		if resolved == "" {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		out = append(out, Link{URL: resolved, Internal: sameHost(base.Host, u.Host)})
	})
	return out
}

func sameHost(a, b string) bool {
	return strings.TrimPrefix(strings.ToLower(a), "www.") == strings.TrimPrefix(strings.ToLower(b), "www.")
}

func splitPath(p string) []string {
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
