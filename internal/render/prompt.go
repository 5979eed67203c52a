// Package render turns agent prompt markdown into HTML safe to embed in the
// dashboard preview pane.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy = bluemonday.UGCPolicy()
)

// Prompt converts markdown to sanitized HTML.
func Prompt(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}
