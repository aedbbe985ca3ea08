// Package markdown renders blog bodies and derives plain-text excerpts from them.
package markdown

import (
	"html/template"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const lastGoodBreakRatio = 0.8

var (
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.*?)\*`)
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+(.*?)$`)
	linkPattern       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	imagePattern      = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	orderedListMarker = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	bulletListMarker  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// ToHTML renders Markdown into sanitised HTML. Raw HTML in the source is dropped and
// absolute links open in a new tab.
func ToHTML(input string) template.HTML {
	if strings.TrimSpace(input) == "" {
		return template.HTML("")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(input))
	markExternalLinks(doc)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})

	return template.HTML(md.Render(doc, renderer))
}

// Excerpt returns at most maxChars runes of plain text, cut at a word boundary when one
// is close enough, followed by "...".
func Excerpt(input string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	clean := toPlainText(input)
	if utf8.RuneCountInString(clean) <= maxChars {
		return clean
	}

	runes := []rune(clean)
	cut := maxChars
	for i := maxChars - 1; i >= int(float64(maxChars)*lastGoodBreakRatio); i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut])) + "..."
}

func toPlainText(input string) string {
	text := imagePattern.ReplaceAllString(input, " ")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "\n$1\n")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = orderedListMarker.ReplaceAllString(text, "")
	text = bulletListMarker.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func markExternalLinks(doc ast.Node) {
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		link, ok := node.(*ast.Link)
		if !ok {
			return ast.GoToNext
		}
		dest := string(link.Destination)
		if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
			link.AdditionalAttributes = append(link.AdditionalAttributes,
				`target="_blank"`, `rel="noopener noreferrer"`)
		}
		return ast.GoToNext
	})
}
