package html

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GoQueryDocument wraps goquery.Document to implement our Document interface
type GoQueryDocument struct {
	doc *goquery.Document
}

// GoQueryNode wraps a single-node goquery.Selection to implement our Node interface
type GoQueryNode struct {
	selection *goquery.Selection
}

// GoQueryParser implements our Parser interface using goquery
type GoQueryParser struct{}

// NewParser creates a new GoQuery-based HTML parser
func NewParser() *GoQueryParser {
	return &GoQueryParser{}
}

// Parse parses HTML string into a Document
func (p *GoQueryParser) Parse(htmlStr string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &GoQueryDocument{doc: doc}, nil
}

// ParseFile reads a file, decodes it to UTF-8 and parses it into a Document
func (p *GoQueryParser) ParseFile(filename string) (Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer file.Close()

	content, err := ReadUTF8(file, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return p.Parse(content)
}

// Root returns the <html> element
func (d *GoQueryDocument) Root() Node {
	selection := d.doc.Find("html").First()
	if selection.Length() == 0 {
		return nil
	}
	return &GoQueryNode{selection: selection}
}

// NodeName returns the lower-cased node name
func (n *GoQueryNode) NodeName() string {
	if n.selection.Length() == 0 {
		return ""
	}
	return strings.ToLower(goquery.NodeName(n.selection))
}

// IsText reports whether the node is a text node
func (n *GoQueryNode) IsText() bool {
	return n.NodeName() == TextNodeName
}

// Attr returns the value of the named attribute
func (n *GoQueryNode) Attr(name string) (string, bool) {
	return n.selection.Attr(name)
}

// Attributes returns all attributes as a map
func (n *GoQueryNode) Attributes() map[string]string {
	attrs := make(map[string]string)

	if n.selection.Length() > 0 {
		node := n.selection.Get(0)
		for _, attr := range node.Attr {
			attrs[attr.Key] = attr.Val
		}
	}

	return attrs
}

// TextContent returns the text of the node and its descendants
func (n *GoQueryNode) TextContent() string {
	return n.selection.Text()
}

// Parent returns the parent element
func (n *GoQueryNode) Parent() Node {
	parent := n.selection.Parent()
	if parent.Length() == 0 {
		return nil
	}
	return &GoQueryNode{selection: parent}
}

// ChildNodes returns all children, text and comment nodes included
func (n *GoQueryNode) ChildNodes() []Node {
	children := n.selection.Contents()
	nodes := make([]Node, children.Length())

	children.Each(func(i int, s *goquery.Selection) {
		nodes[i] = &GoQueryNode{selection: s}
	})

	return nodes
}
