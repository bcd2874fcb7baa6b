package mobilecontent

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"mobilecontent/internal/blocks"
	"mobilecontent/internal/config"
	"mobilecontent/internal/html"
	"mobilecontent/internal/resolver"
)

// ErrNoBaseURL is returned when neither a base URL nor a request to derive it from was given
var ErrNoBaseURL = errors.New("base URL is not set and no request was given to derive it from")

// Converter flattens an HTML fragment into an ordered list of content blocks.
// All work happens in New; a Converter is read-only afterwards.
type Converter struct {
	config   config.Config
	registry *Registry
	builtins map[string]Rule
	resolver *resolver.Resolver
	sequence *blocks.Sequence
	emitter  *Emitter
	logger   zerolog.Logger
}

// Option configures a Converter
type Option func(*options)

type options struct {
	baseURL  string
	request  *http.Request
	config   config.Config
	registry *Registry
	parser   html.Parser
	logger   zerolog.Logger
}

// WithBaseURL sets the base URL used to absolutize relative links
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithRequest derives the base URL from r when no base URL is configured
func WithRequest(r *http.Request) Option {
	return func(o *options) { o.request = r }
}

// WithConfig replaces the default configuration
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithRegistry makes the converter look custom rules up in registry instead of DefaultRegistry
func WithRegistry(registry *Registry) Option {
	return func(o *options) { o.registry = registry }
}

// WithParser replaces the goquery-based HTML parser
func WithParser(parser html.Parser) Option {
	return func(o *options) { o.parser = parser }
}

// WithLogger sets the logger used for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New parses content and flattens it into blocks
func New(content string, opts ...Option) (*Converter, error) {
	o := options{
		config:   config.Default(),
		registry: DefaultRegistry,
		parser:   html.NewParser(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := o.resolveBaseURL()
	if err != nil {
		return nil, err
	}

	registry, err := o.registry.withSpecs(o.config.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule registry: %w", err)
	}

	if o.config.Sanitize {
		content = html.Sanitize(content)
	}

	doc, err := o.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	linkResolver := resolver.New(baseURL)
	sequence := blocks.NewSequence()

	c := &Converter{
		config:   o.config,
		registry: registry,
		builtins: builtinRules(),
		resolver: linkResolver,
		sequence: sequence,
		emitter:  &Emitter{sequence: sequence, resolver: linkResolver},
		logger:   o.logger,
	}

	c.flatten(doc.Root())

	c.logger.Debug().
		Str("base_url", linkResolver.Base()).
		Int("blocks", sequence.Len()).
		Msg("content converted")

	return c, nil
}

func (o options) resolveBaseURL() (string, error) {
	switch {
	case o.baseURL != "":
		return o.baseURL, nil
	case o.config.BaseURL != "":
		return o.config.BaseURL, nil
	case o.request != nil:
		return resolver.FromRequest(o.request), nil
	default:
		return "", ErrNoBaseURL
	}
}

// Blocks returns the blocks in document order
func (c *Converter) Blocks() []blocks.Block {
	return c.sequence.Blocks()
}

// JSON returns the blocks encoded as a JSON array
func (c *Converter) JSON() ([]byte, error) {
	data, err := c.sequence.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode blocks: %w", err)
	}
	return data, nil
}

// BaseURL returns the normalized base URL links were resolved against
func (c *Converter) BaseURL() string {
	return c.resolver.Base()
}

// Convert is a convenience function that flattens content with the default configuration
func Convert(content, baseURL string) ([]blocks.Block, error) {
	c, err := New(content, WithBaseURL(baseURL))
	if err != nil {
		return nil, err
	}
	return c.Blocks(), nil
}

// ConvertJSON is a convenience function that flattens content and encodes the result
func ConvertJSON(content, baseURL string) ([]byte, error) {
	c, err := New(content, WithBaseURL(baseURL))
	if err != nil {
		return nil, err
	}
	return c.JSON()
}
