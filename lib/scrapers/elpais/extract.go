package elpais

import (
	"encoding/json"
	"net/url"
	"strings"

	"headlinewatch/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

func pageLanguage(doc *goquery.Document) string {
	lang, _ := doc.Find("html").Attr("lang")
	return lang
}

// extractArticleLinks pulls article urls off the section front page.
// Teasers are <article> cards with an <h2> link, with a looser h2
// sweep as fallback when the markup shifts.
func extractArticleLinks(doc *goquery.Document, base *url.URL, limit int) []string {
	seen := map[string]bool{}
	var links []string

	add := func(href string) bool {
		resolved := htmlutil.ResolveHref(base, href)
		if resolved == "" || seen[resolved] {
			return len(links) >= limit
		}
		seen[resolved] = true
		links = append(links, resolved)
		return len(links) >= limit
	}

	doc.Find("article").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		href, ok := card.Find("h2 a").Attr("href")
		if !ok {
			return true
		}
		return !add(href)
	})

	if len(links) < limit {
		doc.Find("h2 a[href*='/opinion/']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, ok := a.Attr("href")
			if !ok {
				return true
			}
			return !add(href)
		})
	}

	return links
}

// extractTitle tries the known headline spots in order, the markup
// varies between plain articles, editorials and columns.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range []string{"article header h1", "h1.a_t", "h1"} {
		title := htmlutil.CleanText(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	headline, _ := articleMetadata(doc)
	return headline
}

// articleMetadata reads the ld+json NewsArticle block embedded on
// article pages.
func articleMetadata(doc *goquery.Document) (headline string, image string) {
	for _, script := range doc.Find(`script[type="application/ld+json"]`).Nodes {
		var meta struct {
			Type     string          `json:"@type"`
			Headline string          `json:"headline"`
			Image    json.RawMessage `json:"image"`
		}
		err := json.Unmarshal([]byte(htmlutil.GetText(script)), &meta)
		if err != nil || !strings.HasSuffix(meta.Type, "NewsArticle") {
			continue
		}
		return htmlutil.CleanText(meta.Headline), metadataImage(meta.Image)
	}
	return "", ""
}

// metadataImage handles the shapes ld+json allows for image, a plain
// url, a list of urls or an ImageObject.
func metadataImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if json.Unmarshal(raw, &single) == nil {
		return single
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return list[0]
	}
	var object struct {
		Url string `json:"url"`
	}
	if json.Unmarshal(raw, &object) == nil {
		return object.Url
	}
	return ""
}

func extractBody(doc *goquery.Document) string {
	paragraphs := doc.Find(
		"article .a_c p, article .article_body p, article [data-dtm-region='articulo_cuerpo'] p",
	)
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("article p")
	}

	var parts []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		text := htmlutil.CleanText(p.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

func findCoverImage(doc *goquery.Document, base *url.URL) string {
	src, ok := doc.Find("article figure img, article .a_m_w img").First().Attr("src")
	if ok {
		return htmlutil.ResolveHref(base, src)
	}
	// lazy loaded covers have no src in the static markup, the
	// metadata block still carries the url
	_, image := articleMetadata(doc)
	return htmlutil.ResolveHref(base, image)
}
