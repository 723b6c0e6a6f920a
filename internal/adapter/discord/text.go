package discord

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText flattens the simple markup Android notification bodies allow
// (<b>, <i>, <br>, <p>) into plain text.
func htmlToText(input string) string {
	if input == "" || !strings.ContainsRune(input, '<') {
		return input
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.TrimSpace(builder.String())
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" {
			builder.WriteRune('\n')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}

	if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "li") {
		builder.WriteRune('\n')
	}
}
