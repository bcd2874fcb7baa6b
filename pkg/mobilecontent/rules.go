package mobilecontent

import (
	"mobilecontent/internal/blocks"
	"mobilecontent/internal/html"
)

// textTag is the dispatch name of text nodes
const textTag = "text"

// builtinRules returns the rules that win over any registered rule
func builtinRules() map[string]Rule {
	return map[string]Rule{
		"a":     linkRule,
		"img":   imageRule,
		"p":     paragraphRule,
		textTag: plainTextRule,
	}
}

func linkRule(node html.Node, emit *Emitter) {
	href, _ := node.Attr("href")
	emit.Link(href, node.TextContent())
}

func imageRule(node html.Node, emit *Emitter) {
	src, _ := node.Attr("src")
	emit.Image(src)
}

func paragraphRule(node html.Node, emit *Emitter) {
	emit.Text(blocks.TypeParagraph, node.TextContent())
}

// plainTextRule handles bare text under body, which has no tag of its own
func plainTextRule(node html.Node, emit *Emitter) {
	emit.Text(blocks.TypeDefault, node.TextContent())
}

func defaultRule(node html.Node, emit *Emitter) {
	emit.Text(blocks.TypeDefault, node.TextContent())
}
