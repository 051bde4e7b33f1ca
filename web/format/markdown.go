package format

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMessage converts an assistant reply (plain paragraphs with emoji
// prefixes, possibly markdown) to HTML for the chat page. Raw HTML in the
// input is skipped, so answer text can never inject markup.
func RenderMessage(text string) string {
	if text == "" {
		return ""
	}
	// Parsers are single-use; build one per call.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}
