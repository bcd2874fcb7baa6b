package html

import "github.com/microcosm-cc/bluemonday"

// sanitizePolicy keeps user-generated-content markup (text, lists, links, images)
// and drops scripts, styles, forms and event handlers.
var sanitizePolicy = bluemonday.UGCPolicy()

// Sanitize removes markup that should never reach a mobile client.
// The result is a fragment; parsing it yields a synthesized <body>.
func Sanitize(content string) string {
	return sanitizePolicy.Sanitize(content)
}
