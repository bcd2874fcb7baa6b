package html

// Node is a read-only view of a DOM node, element or text.
// This interface can be implemented by any HTML parsing library
type Node interface {
	// NodeName returns the lower-cased tag name for elements and
	// "#text", "#comment" or "#document" for other node types
	NodeName() string
	IsText() bool

	// Attribute access
	Attr(name string) (string, bool)
	Attributes() map[string]string

	// TextContent returns the concatenated text of the node and all its descendants
	TextContent() string

	// Tree navigation
	Parent() Node
	ChildNodes() []Node
}

// Document represents the complete parsed HTML document
type Document interface {
	// Root returns the <html> element, or nil when the parser produced none
	Root() Node
}

// Parser handles parsing HTML documents
type Parser interface {
	Parse(html string) (Document, error)
	ParseFile(filename string) (Document, error)
}

// Node names with special meaning during flattening
const (
	TextNodeName = "#text"
	BodyTag      = "body"
)
