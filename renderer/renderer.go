// Package renderer renders the quant monitor reports as Markdown.
//
// Reports are text/template files embedded in the binary. A report is a main
// template that may include partials shared with other reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/knowledge"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

var funcs = template.FuncMap{
	// cell escapes text for a Markdown table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"join": strings.Join,
	"trim": strings.TrimSpace,
}

// RenderPortfolios renders the list of portfolios, marking the selected one.
func RenderPortfolios(summaries []portfolio.Summary, selected string) string {
	data := struct {
		Portfolios []portfolio.Summary
		Selected   string
	}{summaries, selected}
	return renderTemplate("portfolios", "portfolios.md", nil, data)
}

// RenderSummary renders the headline figures of a portfolio.
func RenderSummary(s portfolio.Summary) string {
	partials := map[string]string{"summary_cards": "summary_cards.md"}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderHoldings renders a holdings table preceded by the portfolio summary.
func RenderHoldings(s portfolio.Summary, h portfolio.Holdings) string {
	data := struct {
		Summary portfolio.Summary
		portfolio.Holdings
	}{s, h}
	partials := map[string]string{"summary_cards": "summary_cards.md"}
	return renderTemplate("holdings", "holdings.md", partials, data)
}

// RenderAllocation renders the sector allocation of a portfolio.
func RenderAllocation(name string, slices []portfolio.AllocationSlice) string {
	data := struct {
		Name   string
		Slices []portfolio.AllocationSlice
	}{name, slices}
	return renderTemplate("allocation", "allocation.md", nil, data)
}

// RenderPerformance renders performance statistics and the net value series.
func RenderPerformance(points []portfolio.PerformancePoint) string {
	data := struct {
		Points []portfolio.PerformancePoint
		Stats  portfolio.PerformanceStats
	}{points, portfolio.Performance(points)}
	return renderTemplate("performance", "performance.md", nil, data)
}

// RenderInstruments renders instrument search results.
func RenderInstruments(instruments []portfolio.Instrument) string {
	return renderTemplate("instruments", "instruments.md", nil, instruments)
}

// RenderArticles renders a list of knowledge base articles with the categories
// and the recently read articles.
func RenderArticles(categories []knowledge.Category, articles []knowledge.Article, recent []knowledge.RecentItem) string {
	data := struct {
		Categories []knowledge.Category
		Articles   []knowledge.Article
		Recent     []knowledge.RecentItem
	}{categories, articles, recent}
	return renderTemplate("articles", "articles.md", nil, data)
}

// RenderArticle renders an article, its Markdown content followed by its metadata.
func RenderArticle(a knowledge.Article) string {
	return renderTemplate("article", "article.md", nil, a)
}

// renderTemplate renders a main template that depends on several partials.
// Trailing newlines of every file are dropped and the result ends with exactly one.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(strings.TrimRight(string(mainContent), "\n"))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(strings.TrimRight(string(content), "\n")); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
