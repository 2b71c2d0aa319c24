package bot

import (
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/Semior001/headlines/pkg/gnews"
)

const helpText = "/top [topic] - top headlines\n" +
	"/search <keywords> - search for articles, or just send me the keywords\n" +
	"/find <title> - find an article by its exact title\n" +
	"/read <n> - read the n-th article of the last list\n" +
	"/summary <n> - summarize the n-th article of the last list\n" +
	"/settings - show your preferences\n" +
	"/lang <code>, /country <code|none>, /topic <topic|none>, /count <n> - change your preferences\n" +
	"/stop - unsubscribe from the digest"

var funcs = template.FuncMap{
	"md":       escapeMarkdown,
	"cardDate": func(s string) string { return formatDate(s, "Jan 2, 2006, 03:04 PM") },
	"longDate": func(s string) string { return formatDate(s, "Monday, January 2, 2006, 03:04 PM") },
	"inc":      func(i int) int { return i + 1 },
	"upper":    strings.ToUpper,
	"short":    func(s string) string { return truncate(s, maxDescriptionLen) },
	"long":     func(s string) string { return truncate(s, maxFullTextLen) },
}

const (
	maxDescriptionLen = 200
	maxFullTextLen    = 3000
)

var listTmpl = template.Must(template.New("list").Funcs(funcs).Parse(`*{{.Header}}*
{{range $i, $a := .Articles}}
*{{inc $i}}.* {{md $a.Title}}
_{{md $a.Source.Name}}, {{cardDate $a.PublishedAt}}{{with $a.Lang}} · {{upper .}}{{end}}_
{{- if $a.Description}}
{{md (short $a.Description)}}
{{- end}}
{{end}}
Send /read <number> to open an article.`))

var articleTmpl = template.Must(template.New("article").Funcs(funcs).Parse(`*{{md .Article.Title}}*
_{{md .Article.Source.Name}}_
{{longDate .Article.PublishedAt}}
{{if .Article.Description}}
{{md .Article.Description}}
{{end}}
{{- if .FullText}}
{{md (long .FullText)}}
{{else if .Article.Content}}
{{md .Article.Content}}
{{end}}
[Read full article]({{.Article.URL}})`))

var summaryTmpl = template.Must(template.New("summary").Funcs(funcs).Parse(`*{{md .Article.Title}}*

{{md .Summary}}

[source]({{.Article.URL}})`))

func renderList(header string, articles []gnews.Article) (string, error) {
	sb := &strings.Builder{}
	err := listTmpl.Execute(sb, struct {
		Header   string
		Articles []gnews.Article
	}{Header: header, Articles: articles})
	return sb.String(), err
}

func renderArticle(a gnews.Article, fullText string) (string, error) {
	sb := &strings.Builder{}
	err := articleTmpl.Execute(sb, struct {
		Article  gnews.Article
		FullText string
	}{Article: a, FullText: fullText})
	return sb.String(), err
}

func renderSummary(a gnews.Article, summary string) (string, error) {
	sb := &strings.Builder{}
	err := summaryTmpl.Execute(sb, struct {
		Article gnews.Article
		Summary string
	}{Article: a, Summary: summary})
	return sb.String(), err
}

// formatDate formats an RFC 3339 timestamp for display, unparsable
// values are returned as is.
func formatDate(s, layout string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format(layout)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}

// telegram legacy markdown needs only these to be escaped
var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
