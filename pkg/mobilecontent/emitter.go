package mobilecontent

import (
	"mobilecontent/internal/blocks"
	"mobilecontent/internal/html"
	"mobilecontent/internal/resolver"
)

// Emitter is the write capability handed to rules.
// Blocks with no content are dropped rather than appended.
type Emitter struct {
	sequence *blocks.Sequence
	resolver *resolver.Resolver
}

// Push appends b unless it is empty
func (e *Emitter) Push(b blocks.Block) bool {
	switch b.Kind {
	case blocks.KindText:
		if b.Content == "" {
			return false
		}
	case blocks.KindLink:
		if b.URL == "" || b.Title == "" {
			return false
		}
	case blocks.KindList:
		// lists are kept even when every child was empty
	default:
		return false
	}

	e.sequence.Append(b)
	return true
}

// Text trims raw and appends it as a block of blockType
func (e *Emitter) Text(blockType, raw string) bool {
	return e.Push(blocks.NewText(blockType, html.TrimContent(raw)))
}

// List trims every item, drops the empty ones and appends a grouped block
func (e *Emitter) List(blockType string, items []string) bool {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := html.TrimContent(item); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return e.Push(blocks.NewList(blockType, kept))
}

// Link appends a link block when both href and the trimmed title are present
func (e *Emitter) Link(href, title string) bool {
	title = html.TrimContent(title)
	if href == "" || title == "" {
		return false
	}
	return e.Push(blocks.NewLink(e.Resolve(href), title))
}

// Image appends an image block for a non-empty src
func (e *Emitter) Image(src string) bool {
	if src == "" {
		return false
	}
	return e.Push(blocks.NewText(blocks.TypeImage, e.Resolve(src)))
}

// Resolve returns link as an absolute URL against the converter's base URL
func (e *Emitter) Resolve(link string) string {
	return e.resolver.Resolve(link)
}

// Trim applies the content trimming rule used by every built-in rule
func (e *Emitter) Trim(raw string) string {
	return html.TrimContent(raw)
}
