package html

import (
	"regexp"

	"golang.org/x/net/html"
)

// lineEdgeSpace matches whitespace at the start or end of every line.
// \p{Z} adds Unicode separators such as NBSP, \x{0B} the vertical tab.
var lineEdgeSpace = regexp.MustCompile(`(?m)^[\s\p{Z}\x{0B}]+|[\s\p{Z}\x{0B}]+$`)

// TrimContent decodes HTML entities and strips leading and trailing
// whitespace of each line. Inner spacing and line breaks between
// non-blank lines are kept.
func TrimContent(content string) string {
	content = html.UnescapeString(content)

	return lineEdgeSpace.ReplaceAllString(content, "")
}
