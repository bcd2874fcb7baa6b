package mobilecontent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mobilecontent/internal/blocks"
	"mobilecontent/internal/config"
	"mobilecontent/internal/html"
)

// Rule turns a dispatched node into zero or more blocks through emit
type Rule func(node html.Node, emit *Emitter)

var (
	// ErrEmptyTag is returned when registering a rule without a tag name
	ErrEmptyTag = errors.New("tag name is empty")
	// ErrNilRule is returned when registering a nil rule
	ErrNilRule = errors.New("rule is nil")
)

// Registry maps lower-cased tag names to custom rules.
// Rules are only added or replaced, never removed.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// DefaultRegistry is shared by every converter that is not given its own registry
var DefaultRegistry = NewRegistry()

// RegisterTagRule registers rule for tag in DefaultRegistry
func RegisterTagRule(tag string, rule Rule) error {
	return DefaultRegistry.Register(tag, rule)
}

// Register adds or replaces the rule for tag. Tag names are case-insensitive.
func (r *Registry) Register(tag string, rule Rule) error {
	key := strings.ToLower(strings.TrimSpace(tag))
	if key == "" {
		return ErrEmptyTag
	}
	if rule == nil {
		return fmt.Errorf("cannot register %q: %w", key, ErrNilRule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[key] = rule
	return nil
}

// Lookup returns the rule registered for tag
func (r *Registry) Lookup(tag string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[strings.ToLower(tag)]
	return rule, ok
}

// Tags returns the registered tag names in sorted order
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.rules))
	for tag := range r.rules {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Clone returns an independent copy of the registry
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := NewRegistry()
	for tag, rule := range r.rules {
		clone.rules[tag] = rule
	}
	return clone
}

// withSpecs returns a registry extending r with declarative rules.
// r itself is left untouched.
func (r *Registry) withSpecs(specs map[string]config.RuleSpec) (*Registry, error) {
	if len(specs) == 0 {
		return r, nil
	}

	extended := r.Clone()
	for tag, spec := range specs {
		if err := extended.Register(tag, specRule(spec)); err != nil {
			return nil, fmt.Errorf("failed to register rule for %q: %w", tag, err)
		}
	}
	return extended, nil
}

func specRule(spec config.RuleSpec) Rule {
	if spec.Attr != "" {
		return URLRule(spec.Type, spec.Attr)
	}
	return TextRule(spec.Type)
}

// TextRule emits the node's trimmed text as a block of blockType
func TextRule(blockType string) Rule {
	return func(node html.Node, emit *Emitter) {
		emit.Text(blockType, node.TextContent())
	}
}

// URLRule emits the absolute form of the node's attr value as a block of blockType
func URLRule(blockType, attr string) Rule {
	return func(node html.Node, emit *Emitter) {
		value, ok := node.Attr(attr)
		if !ok || value == "" {
			return
		}
		emit.Push(blocks.NewText(blockType, emit.Resolve(value)))
	}
}
