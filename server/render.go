package server

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// renderHTML converts a stored article to HTML for direct viewing.
func renderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
