package blocks

// Kind describes which payload fields of a Block are meaningful
type Kind int

const (
	// KindText blocks carry a single normalized string in Content
	KindText Kind = iota
	// KindList blocks carry the trimmed text of each non-empty child in Items
	KindList
	// KindLink blocks carry URL and Title
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Block types produced by the built-in rules. Custom rules may use any other name.
const (
	TypeDefault   = "default"
	TypeParagraph = "paragraph"
	TypeImage     = "image"
	TypeLink      = "link"
)

// Block is one flattened content record
type Block struct {
	Type    string   // Block type (paragraph, image, ul, custom names...)
	Kind    Kind     // Payload shape
	Content string   // Text payload for KindText
	Items   []string // Child texts for KindList, never nil for lists
	URL     string   // Absolute URL for KindLink
	Title   string   // Link title for KindLink
}

// NewText creates a block holding a single string
func NewText(blockType, content string) Block {
	return Block{Type: blockType, Kind: KindText, Content: content}
}

// NewList creates a grouped block. The items slice is copied.
func NewList(blockType string, items []string) Block {
	copied := make([]string, len(items))
	copy(copied, items)
	return Block{Type: blockType, Kind: KindList, Items: copied}
}

// NewLink creates a link block
func NewLink(url, title string) Block {
	return Block{Type: TypeLink, Kind: KindLink, URL: url, Title: title}
}
