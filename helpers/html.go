// Package helpers holds small text utilities shared by the parsers.
package helpers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from a string, decodes HTML entities and
// collapses whitespace. Titles exported by OJS may carry inline tags
// such as <i> or <sup>.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return CollapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CollapseWhitespace(s)
	}
	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace trims s and folds runs of whitespace into one space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
