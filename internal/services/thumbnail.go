package services

import (
	"bytes"

	"golang.org/x/net/html"
)

// extractThumbnail scans an HTML document for a usable preview image:
// the og:image meta tag wins, otherwise the first <img> source.
// Returns "" when the document has neither or cannot be parsed.
func extractThumbnail(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	if og := findOGImage(doc); og != "" {
		return og
	}
	return findFirstImg(doc)
}

func findOGImage(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var property, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property":
				property = attr.Val
			case "content":
				content = attr.Val
			}
		}
		if property == "og:image" && content != "" {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findOGImage(c); found != "" {
			return found
		}
	}
	return ""
}

func findFirstImg(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "img" {
		for _, attr := range n.Attr {
			if attr.Key == "src" && attr.Val != "" {
				return attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstImg(c); found != "" {
			return found
		}
	}
	return ""
}
