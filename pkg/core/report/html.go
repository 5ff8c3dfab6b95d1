package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"business_consultant/pkg/core/consult"
	"business_consultant/pkg/core/utils"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Business Review %s</title>
<style>
body { font-family: Georgia, serif; max-width: 880px; margin: 2rem auto; padding: 0 1rem; color: #1f2430; }
h1 { border-bottom: 3px solid #1f2430; padding-bottom: 0.3rem; }
h2 { margin-top: 2.2rem; border-bottom: 1px solid #ccd; padding-bottom: 0.2rem; }
table { border-collapse: collapse; margin: 0.8rem 0; }
th, td { border: 1px solid #ccd; padding: 0.35rem 0.7rem; text-align: left; }
th { background: #f4f5f8; font-weight: 600; }
nav.toc { background: #f4f5f8; padding: 0.8rem 1.2rem; border: 1px solid #ccd; }
.narrative { line-height: 1.55; }
.meta { color: #667; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Business Review</h1>
<p class="meta">Review %s generated %s</p>
%s
%s
</body>
</html>
`

// renderMarkdown converts one narrative to an HTML fragment. Backends
// sometimes wrap the whole reply in a code fence; that wrapping is
// stripped here so the narrative renders as markup, not as one big
// code block.
func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(utils.CleanMarkdown(text)), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// sanitizeFragment strips active content from a rendered narrative.
// Narrative text originates from an external service and ends up in a
// browser, so scripts, frames, event handlers, and javascript: URLs all
// go.
func sanitizeFragment(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("sanitize: %w", err)
	}

	doc.Find("script, style, iframe, object, embed, form").Remove()

	doc.Find("*").Each(func(i int, sel *goquery.Selection) {
		node := sel.Get(0)
		var drop []string
		for _, attr := range node.Attr {
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				drop = append(drop, attr.Key)
			}
		}
		for _, key := range drop {
			sel.RemoveAttr(key)
		}

		for _, key := range []string{"href", "src"} {
			if val, ok := sel.Attr(key); ok {
				if strings.HasPrefix(strings.TrimSpace(strings.ToLower(val)), "javascript:") {
					sel.RemoveAttr(key)
				}
			}
		}
	})

	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("sanitize: %w", err)
	}
	return cleaned, nil
}

func writeMetricTables(b *strings.Builder, sections []metricSection) {
	for _, sec := range sections {
		fmt.Fprintf(b, "<h3>%s</h3>\n<table>\n", html.EscapeString(sec.Title))
		for _, row := range sec.Rows {
			fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>\n",
				html.EscapeString(row[0]), html.EscapeString(row[1]))
		}
		b.WriteString("</table>\n")
	}
}

func writeNarrative(b *strings.Builder, id, title, narrative string) error {
	rendered, err := renderMarkdown(narrative)
	if err != nil {
		return err
	}
	cleaned, err := sanitizeFragment(rendered)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "<h2 id=%q>%s</h2>\n<div class=\"narrative\">\n%s</div>\n", id, html.EscapeString(title), cleaned)
	return nil
}

// buildTOC collects the section headings, assigning anchors to any
// heading the narratives brought along without one.
func buildTOC(doc *goquery.Document) string {
	var b strings.Builder
	b.WriteString("<nav class=\"toc\">\n<strong>Contents</strong>\n<ul>\n")
	count := 0
	doc.Find("h2").Each(func(i int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			count++
			id = fmt.Sprintf("section-%d", count)
			sel.SetAttr("id", id)
		}
		fmt.Fprintf(&b, "<li><a href=\"#%s\">%s</a></li>\n", id, html.EscapeString(sel.Text()))
	})
	b.WriteString("</ul>\n</nav>\n")
	return b.String()
}

// RenderHTML produces a standalone HTML document for a full board
// session: metric tables, the three narratives, and a table of contents
// over the rendered sections.
func RenderHTML(rev *consult.BusinessReview) ([]byte, error) {
	var body strings.Builder

	body.WriteString("<h2 id=\"financial-metrics\">Financial Metrics</h2>\n")
	writeMetricTables(&body, financialSections(rev.FinancialMetrics))
	if err := writeNarrative(&body, "cfo-report", "CFO Report", rev.FinancialNarrative); err != nil {
		return nil, err
	}

	body.WriteString("<h2 id=\"marketing-metrics\">Marketing Metrics</h2>\n")
	writeMetricTables(&body, marketingSections(rev.MarketingMetrics))
	if err := writeNarrative(&body, "cmo-report", "CMO Report", rev.MarketingNarrative); err != nil {
		return nil, err
	}

	if err := writeNarrative(&body, "ceo-directive", "CEO Directive", rev.CEONarrative); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}
	toc := buildTOC(doc)
	finalBody, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}

	page := fmt.Sprintf(pageShell,
		html.EscapeString(rev.ID),
		html.EscapeString(rev.ID),
		rev.GeneratedAt.Format(time.RFC3339),
		toc,
		finalBody,
	)
	return []byte(page), nil
}
