// Package htmlutil has small helpers for pulling readable text and
// links out of parsed html documents.
package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText strips non-printable runes and turns every whitespace run,
// which news markup is full of, into a single space.
func CleanText(s string) string {
	var b strings.Builder
	for _, c := range s {
		// newlines and tabs inside text separate words, dropping them
		// outright would glue the words together
		if unicode.IsSpace(c) {
			b.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			b.WriteRune(c)
		}
	}
	out := strings.Trim(b.String(), " ")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// ResolveHref turns a possibly relative href into an absolute url
// against base. Returns an empty string for unparseable input.
func ResolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		link = base.ResolveReference(link)
	}
	link.Fragment = ""
	return link.String()
}
