package engine

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\n(.*?)\n?```$")

// StripFence removes a single wrapping code fence. Models asked for raw
// JSON or Markdown still wrap it in ``` blocks now and then.
func StripFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(trimmed); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

var headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// ExtractTitle returns the first level-1 heading of a markdown document,
// or "" when there is none.
func ExtractTitle(md string) string {
	if m := headingRe.FindStringSubmatch(md); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// EnsureHeading prepends a level-1 heading when the document lacks one, so
// the stored artifact always yields a title on listing.
func EnsureHeading(md, title string) string {
	if ExtractTitle(md) != "" || title == "" {
		return md
	}
	return "# " + title + "\n\n" + md
}
