package linkedin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

func cleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// blockText renders a selection as plain text with one line per block element.
func blockText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "li" {
				sb.WriteString("\n• ")
			} else if blockElements[n.Data] {
				sb.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] && n.Data != "br" {
			sb.WriteString("\n")
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}

	lines := strings.Split(norm.NFKC.String(sb.String()), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" && line != "•" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
