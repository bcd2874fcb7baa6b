package resolver

import (
	"regexp"
	"strings"
)

// hostPathPattern matches strings that already look like "host.tld/path":
// dot separated labels without slashes, then a slash and at least one more character.
var hostPathPattern = regexp.MustCompile(`^[^/.]+(\.[^/.]+)+/.+`)

// Resolver turns the src/href values found in a document into absolute URLs
type Resolver struct {
	base string
}

// New creates a resolver for the given base URL.
// The base is normalized to end with exactly one slash.
func New(baseURL string) *Resolver {
	return &Resolver{base: NormalizeBase(baseURL)}
}

// Base returns the normalized base URL
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns link as an absolute URL.
//
// Anything starting with "http" is returned untouched (this also lets through
// strings like "httpfoo"). A value shaped like "host.tld/path" gets an
// "http://" prefix. Everything else is joined to the base URL with its
// leading slashes removed.
func (r *Resolver) Resolve(link string) string {
	if IsAbsolute(link) {
		return link
	}

	if LooksLikeHost(link) {
		return "http://" + link
	}

	return r.base + strings.TrimLeft(link, "/")
}

// IsAbsolute reports whether link starts with the literal prefix "http"
func IsAbsolute(link string) bool {
	return strings.HasPrefix(link, "http")
}

// LooksLikeHost reports whether link starts with something shaped like a host name followed by a path
func LooksLikeHost(link string) bool {
	return hostPathPattern.MatchString(link)
}

// NormalizeBase trims trailing slashes from baseURL and appends exactly one
func NormalizeBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/"
}
