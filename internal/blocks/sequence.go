package blocks

import (
	"encoding/json"
	"fmt"
)

// Sequence is an append-only, ordered list of blocks.
// Insertion order is document order.
type Sequence struct {
	blocks []Block
}

// NewSequence returns an empty sequence
func NewSequence() *Sequence {
	return &Sequence{blocks: make([]Block, 0)}
}

// Append adds a block at the end of the sequence
func (s *Sequence) Append(b Block) {
	s.blocks = append(s.blocks, b)
}

// Len returns the number of blocks
func (s *Sequence) Len() int {
	return len(s.blocks)
}

// Blocks returns a copy of the blocks in order
func (s *Sequence) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// MarshalJSON encodes the sequence as a JSON array. An empty sequence is [].
func (s *Sequence) MarshalJSON() ([]byte, error) {
	list := s.blocks
	if list == nil {
		list = []Block{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode block sequence: %w", err)
	}
	return data, nil
}

type textRecord struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type listRecord struct {
	Type    string   `json:"type"`
	Content []string `json:"content"`
}

type linkRecord struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// MarshalJSON writes the record shape clients expect:
// {type, content} for text, {type, content: [...]} for lists and {type, url, title} for links.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindList:
		items := b.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(listRecord{Type: b.Type, Content: items})
	case KindLink:
		return json.Marshal(linkRecord{Type: b.Type, URL: b.URL, Title: b.Title})
	case KindText:
		return json.Marshal(textRecord{Type: b.Type, Content: b.Content})
	default:
		return nil, fmt.Errorf("unknown block kind %d for type %q", b.Kind, b.Type)
	}
}

// UnmarshalJSON reads any of the record shapes written by MarshalJSON
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Content json.RawMessage `json:"content"`
		URL     string          `json:"url"`
		Title   string          `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode block: %w", err)
	}

	switch {
	case raw.URL != "" || raw.Title != "":
		*b = Block{Type: raw.Type, Kind: KindLink, URL: raw.URL, Title: raw.Title}
	case len(raw.Content) > 0 && raw.Content[0] == '[':
		var items []string
		if err := json.Unmarshal(raw.Content, &items); err != nil {
			return fmt.Errorf("failed to decode list content: %w", err)
		}
		*b = NewList(raw.Type, items)
	default:
		var content string
		if len(raw.Content) > 0 {
			if err := json.Unmarshal(raw.Content, &content); err != nil {
				return fmt.Errorf("failed to decode text content: %w", err)
			}
		}
		*b = NewText(raw.Type, content)
	}
	return nil
}
