package extract

// Candidate selector lists per field, highest priority first. Each cascade
// stops at the first non-empty match. Platform-specific classes come before
// semantic elements so themed markup wins over generic structure.

var headlineSelectors = []string{
	"h1.entry-title",
	"h1.post-title",
	"h1.article-title",
	".post-header h1",
	"article h1",
	"h1",
	"title",
}

var descriptionMetaSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
}

var descriptionTextSelectors = []string{
	".post-excerpt",
	".entry-summary",
	".excerpt",
	".summary",
}

var publishedMetaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="date"]`,
	`meta[name="pubdate"]`,
	`meta[itemprop="datePublished"]`,
}

var publishedTextSelectors = []string{
	".published",
	".post-date",
	".entry-date",
	".date",
}

var modifiedMetaSelectors = []string{
	`meta[property="article:modified_time"]`,
	`meta[name="lastmod"]`,
	`meta[itemprop="dateModified"]`,
}

var authorSelectors = []string{
	`a[rel="author"]`,
	".author a",
	".byline a",
	".post-author a",
	"a.author-name",
}

var siteNameMetaSelectors = []string{
	`meta[property="og:site_name"]`,
	`meta[name="application-name"]`,
}

var siteTitleSelectors = []string{
	".site-title",
	".site-name",
	"header .logo",
}

var logoSelectors = []string{
	`img[class*="logo"]`,
	".logo img",
	`img[id*="logo"]`,
	`header img[src*="logo"]`,
	`img[alt*="logo"]`,
	`img[src*="brand"]`,
}

var imageMetaSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`meta[name="image"]`,
}

var imageElementSelectors = []string{
	".featured-image img",
	".post-thumbnail img",
	"article img",
}

var bodySelectors = []string{
	"article",
	".content",
	"#content",
	".post-content",
	".entry-content",
	"main",
	".main-content",
	".post-body",
	".article-body",
}

// nonContent matches subtrees stripped from body candidates before text
// extraction: chrome, ads, comments, share widgets.
const nonContent = "script, style, noscript, iframe, form, nav, header, footer, aside, " +
	".sidebar, .comments, .comment, .advert, .ads, .ad, .share, .social, .related"

// scriptsOnly is the relaxed strip set used by the ancestor-level fallback.
const scriptsOnly = "script, style, noscript"

var categorySelectors = []string{
	`a[rel="tag"]`,
	".post-categories a",
	".category a",
	".categories a",
	".tags a",
}

// blogIndexSegments are first path segments that identify a blog index page.
var blogIndexSegments = map[string]bool{
	"blog":     true,
	"posts":    true,
	"articles": true,
	"news":     true,
}
