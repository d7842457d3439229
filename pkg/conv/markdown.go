package conv

import (
	stdhtml "html"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowStandardURLs()
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToTelegramHTML renders model output to the HTML subset Telegram accepts.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          htmlFlags,
		RenderNodeHook: escapeRawHTML,
	})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}

// escapeRawHTML renders raw HTML in the source as text. Model replies like
// "<3" or "<Alice>" must reach the user instead of being sanitized away.
func escapeRawHTML(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch node.(type) {
	case *ast.HTMLSpan:
		_, _ = io.WriteString(w, stdhtml.EscapeString(string(node.AsLeaf().Literal)))
		return ast.GoToNext, true
	case *ast.HTMLBlock:
		_, _ = io.WriteString(w, stdhtml.EscapeString(string(node.AsLeaf().Literal))+"\n")
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

// HTMLToText flattens HTML for the plain-text fallback path.
func HTMLToText(s string) (string, error) {
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: false})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
