package store

import (
	"strings"
	"unicode"
)

const slugMaxRunes = 50

// Slug derives a filesystem-safe filename stem from an article title:
// lowercase, spaces to underscores, truncated to 50 runes, then filtered to
// letters, digits, and underscore. An empty result falls back to "blog".
// Deterministic on purpose; distinct titles may collide and the later write
// wins, which the store accepts.
func Slug(title string) string {
	s := strings.ReplaceAll(strings.ToLower(title), " ", "_")

	runes := []rune(s)
	if len(runes) > slugMaxRunes {
		runes = runes[:slugMaxRunes]
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "blog"
	}
	return b.String()
}
