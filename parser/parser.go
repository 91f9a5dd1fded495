// Package parser turns raw HTML into the normalized PageData snapshot
// consumed by the seocheck rule engine. Extraction is best-effort: a
// malformed document yields empty fields, not an error.
package parser

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// Elements whose text is boilerplate or invisible and must not count
// towards the body text.
var skippedContainers = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
}

// Extract parses rawHTML fetched from pageURL into a PageData. The only
// error condition is input that cannot be tokenized at all; missing or
// broken substructures degrade to zero values.
func Extract(rawHTML, pageURL string) (*PageData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &PageData{
		URL:  pageURL,
		HTML: rawHTML,
	}

	base, errURL := url.Parse(pageURL)
	if errURL != nil {
		base = nil
	}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	page.MetaDescription = metaContent(doc, `meta[name="description"]`)
	page.Canonical = attrOf(doc, `link[rel="canonical"]`, "href")

	page.OGTitle = metaContent(doc, `meta[property="og:title"]`)
	page.OGDescription = metaContent(doc, `meta[property="og:description"]`)
	page.OGImage = metaContent(doc, `meta[property="og:image"]`)
	page.TwitterCard = metaContent(doc, `meta[name="twitter:card"]`)
	page.TwitterTitle = metaContent(doc, `meta[name="twitter:title"]`)
	page.TwitterDescription = metaContent(doc, `meta[name="twitter:description"]`)

	extractAuthor(doc, page)
	extractDates(doc, page)
	extractHeadings(doc, page)

	content := contentRoot(doc)
	extractParagraphs(content, page)
	extractLists(content, page)
	page.Tables = doc.Find("table").Length()

	walk := walkContent(content)
	page.BodyText = strings.Join(walk.tokens, " ")
	page.WordCount = len(walk.tokens)

	extractLinks(doc, base, walk, page)
	extractImages(doc, page)
	extractSchemas(doc, page)

	page.ArticleType = classify(page)
	return page, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func attrOf(doc *goquery.Document, selector, attr string) string {
	v, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}

func extractAuthor(doc *goquery.Document, page *PageData) {
	page.Author = metaContent(doc, `meta[name="author"]`)
	rel := doc.Find(`a[rel="author"]`).First()
	if rel.Length() > 0 {
		if page.Author == "" {
			page.Author = strings.TrimSpace(rel.Text())
		}
		page.AuthorLink, _ = rel.Attr("href")
	}
}

func extractDates(doc *goquery.Document, page *PageData) {
	page.PublishDate = metaContent(doc, `meta[property="article:published_time"]`)
	page.ModifiedDate = metaContent(doc, `meta[property="article:modified_time"]`)
	if page.PublishDate == "" {
		if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
			page.PublishDate = strings.TrimSpace(dt)
		}
	}
}

func extractHeadings(doc *goquery.Document, page *PageData) {
	collect := func(selector string) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			out = append(out, strings.TrimSpace(sel.Text()))
		})
		return out
	}
	page.H1 = collect("h1")
	page.H2 = collect("h2")
	page.H3 = collect("h3")
	page.H4 = collect("h4")
	page.H5 = collect("h5")
	page.H6 = collect("h6")
}

// contentRoot prefers <main> or <article> over the whole body so that
// navigation and footer boilerplate stays out of the body text.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"main", "article", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

func extractParagraphs(content *goquery.Selection, page *PageData) {
	content.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text != "" {
			page.Paragraphs = append(page.Paragraphs, text)
		}
	})
}

func extractLists(content *goquery.Selection, page *PageData) {
	content.Find("ul, ol").Each(func(_ int, sel *goquery.Selection) {
		list := ListData{Type: goquery.NodeName(sel)}
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			text := strings.Join(strings.Fields(li.Text()), " ")
			if text != "" {
				list.Items = append(list.Items, text)
			}
		})
		if len(list.Items) > 0 {
			page.Lists = append(page.Lists, list)
		}
	})
}

// contentWalk accumulates visible text tokens in document order and
// remembers the word offset at which each anchor starts.
type contentWalk struct {
	tokens  []string
	linkPos map[*html.Node]int
}

func walkContent(content *goquery.Selection) *contentWalk {
	w := &contentWalk{linkPos: make(map[*html.Node]int)}
	for _, node := range content.Nodes {
		w.walk(node)
	}
	return w
}

func (w *contentWalk) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.tokens = append(w.tokens, strings.Fields(n.Data)...)
		return
	case html.ElementNode:
		if skippedContainers[n.Data] {
			return
		}
		if n.Data == "a" {
			w.linkPos[n] = len(w.tokens)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func extractLinks(doc *goquery.Document, base *url.URL, walk *contentWalk, page *PageData) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		// Only anchors with no destination are skipped; everything else
		// lands in exactly one of the two partitions.
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		resolved := href
		var resolvedURL *url.URL
		if base != nil {
			u, err := base.Parse(href)
			if err != nil {
				return
			}
			resolvedURL = u
			resolved = u.String()
		} else if u, err := url.Parse(href); err == nil {
			resolvedURL = u
		} else {
			return
		}
		target, _ := sel.Attr("target")
		rel, _ := sel.Attr("rel")
		link := LinkData{
			Href:   resolved,
			Text:   strings.Join(strings.Fields(sel.Text()), " "),
			Target: target,
			Rel:    rel,
		}
		if len(sel.Nodes) > 0 {
			if pos, ok := walk.linkPos[sel.Nodes[0]]; ok {
				link.Position = pos
			}
		}
		if link.Position > len(walk.tokens) {
			link.Position = len(walk.tokens)
		}

		// mailto:, tel: and other non-web schemes always point off-site.
		webScheme := resolvedURL.Scheme == "http" || resolvedURL.Scheme == "https"
		if webScheme && base != nil && sameSite(base.Host, resolvedURL.Host) {
			page.InternalLinks = append(page.InternalLinks, link)
		} else {
			page.ExternalLinks = append(page.ExternalLinks, link)
		}
	})
}

// sameSite compares two hosts by registrable domain, case-insensitively
// and ignoring a leading www.
func sameSite(a, b string) bool {
	return registrableHost(a) == registrableHost(b)
}

func registrableHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.Contains(host, "]") {
		host = host[:i]
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}

var lazyClassMarkers = []string{"lazyload", "lazy-load", "b-lazy"}

func extractImages(doc *goquery.Document, page *PageData) {
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		dataSrc, hasDataSrc := sel.Attr("data-src")
		if src == "" {
			src = dataSrc
		}
		alt, _ := sel.Attr("alt")

		img := ImageData{
			Src: strings.TrimSpace(src),
			Alt: strings.TrimSpace(alt),
		}
		img.Caption = strings.Join(strings.Fields(
			sel.Closest("figure").Find("figcaption").First().Text()), " ")

		loading, _ := sel.Attr("loading")
		class, _ := sel.Attr("class")
		classLower := strings.ToLower(class)
		img.HasLazyLoading = strings.EqualFold(loading, "lazy") || hasDataSrc
		for _, marker := range lazyClassMarkers {
			if strings.Contains(classLower, marker) {
				img.HasLazyLoading = true
			}
		}

		page.Images = append(page.Images, img)
	})
}

func extractSchemas(doc *goquery.Document, page *PageData) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var decoded interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &decoded); err != nil {
			// Broken blocks are skipped, never fatal.
			return
		}
		for _, obj := range flattenSchema(decoded) {
			page.Schemas = append(page.Schemas, SchemaData{
				Type: schemaType(obj),
				Data: obj,
			})
		}
	})
}

// flattenSchema unwraps arrays and @graph containers into the individual
// schema objects they carry.
func flattenSchema(v interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			out = append(out, flattenSchema(item)...)
		}
	case map[string]interface{}:
		if graph, ok := t["@graph"].([]interface{}); ok {
			for _, item := range graph {
				out = append(out, flattenSchema(item)...)
			}
			return out
		}
		out = append(out, t)
	}
	return out
}

func schemaType(data map[string]interface{}) string {
	switch t := data["@type"].(type) {
	case string:
		return t
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}
