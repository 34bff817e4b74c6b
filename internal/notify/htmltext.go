package notify

import (
	"strings"

	"golang.org/x/net/html"
)

// maxDescriptionLen bounds the plain-text description handed to templates.
const maxDescriptionLen = 5000

// HTMLToText flattens an HTML fragment (episode descriptions are HTML in
// most feeds) to whitespace-normalized plain text, capped at maxLen runes.
// Unparseable input falls back to the raw string.
func HTMLToText(fragment string, maxLen int) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return truncate(maxLen, strings.TrimSpace(fragment))
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return truncate(maxLen, strings.Join(parts, " "))
}
