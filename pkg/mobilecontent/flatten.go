package mobilecontent

import (
	"mobilecontent/internal/html"
)

// flatten walks the document below <body> in document order
func (c *Converter) flatten(root html.Node) {
	body := findBody(root)
	if body == nil {
		c.logger.Debug().Msg("no body element reachable, nothing to convert")
		return
	}

	c.walk(body, false)
}

// findBody descends from root towards <body>, stepping into a body child
// when one exists and into the first child otherwise.
// It returns nil when a childless node is reached first.
func findBody(node html.Node) html.Node {
	for node != nil {
		if node.NodeName() == html.BodyTag {
			return node
		}

		children := node.ChildNodes()
		if len(children) == 0 {
			return nil
		}

		next := children[0]
		for _, child := range children {
			if child.NodeName() == html.BodyTag {
				next = child
				break
			}
		}
		node = next
	}
	return nil
}

// walk processes node and its subtree.
//
// Childless nodes are dispatched. Whitelisted nodes are collapsed into one
// grouped block. An element holding non-blank text of its own is dispatched
// once, when its first non-blank text child is reached, standing in for its
// text children. Element children after that point are covered. Other
// elements are only descended into.
func (c *Converter) walk(node html.Node, covered bool) {
	children := node.ChildNodes()
	if len(children) == 0 {
		c.dispatch(node, covered)
		return
	}

	name := node.NodeName()
	if c.config.IsNested(name) {
		c.collapse(name, children)
		return
	}

	isBody := name == html.BodyTag
	owned := false
	for _, child := range children {
		// text under body is dispatched as is, elsewhere it belongs to its parent
		if child.IsText() && !isBody {
			if !owned && !isBlank(child) {
				c.dispatch(node, covered)
				owned = true
			}
			continue
		}
		c.walk(child, covered || owned)
	}
}

// collapse emits one grouped block with the text of each non-empty child
func (c *Converter) collapse(name string, children []html.Node) {
	items := make([]string, 0, len(children))
	for _, child := range children {
		items = append(items, child.TextContent())
	}
	c.emitter.List(name, items)
}

// dispatch runs the rule for node: built-in first, then registered, then default.
// The default rule is skipped for covered nodes.
func (c *Converter) dispatch(node html.Node, covered bool) {
	tag := dispatchName(node)

	if rule, ok := c.builtins[tag]; ok {
		rule(node, c.emitter)
		return
	}

	if rule, ok := c.registry.Lookup(tag); ok {
		c.logger.Debug().Str("tag", tag).Msg("custom tag rule")
		rule(node, c.emitter)
		return
	}

	if covered {
		return
	}
	defaultRule(node, c.emitter)
}

func dispatchName(node html.Node) string {
	if node.IsText() {
		return textTag
	}
	return node.NodeName()
}

func isBlank(node html.Node) bool {
	return html.TrimContent(node.TextContent()) == ""
}
