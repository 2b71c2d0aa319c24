package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/Semior001/headlines/pkg/gnews"
	"golang.org/x/exp/slog"
)

// Query defines the common options of the news commands.
type Query struct {
	GNews GNews `group:"gnews" namespace:"gnews" env-namespace:"GNEWS"`

	Count   int           `long:"count" short:"n" default:"10" description:"amount of articles"`
	Lang    string        `long:"lang" default:"en" description:"two-letter language code"`
	Topic   string        `long:"topic" description:"topic of the articles"`
	Country string        `long:"country" description:"two-letter country code, search only"`
	JSON    bool          `long:"json" description:"print articles as json"`
	Timeout time.Duration `long:"timeout" default:"30s" description:"timeout for the request"`

	out io.Writer
}

func (q Query) opts() gnews.QueryOptions {
	return gnews.QueryOptions{Count: q.Count, Lang: q.Lang, Topic: q.Topic, Country: q.Country}
}

func (q Query) run(fn func(ctx context.Context, cl *gnews.Client) ([]gnews.Article, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.Timeout)
	defer cancel()

	articles, err := fn(ctx, q.GNews.Client(slog.Default()))
	if err != nil {
		var te *gnews.TransportError
		if errors.As(err, &te) && te.StatusCode != 0 {
			return fmt.Errorf("news api responded with status %d: %w", te.StatusCode, err)
		}
		return err
	}

	out := q.out
	if out == nil {
		out = os.Stdout
	}

	return printArticles(out, articles, q.JSON)
}

// Top is a command to print top headlines.
type Top struct {
	Query
}

// Execute runs the command.
func (t Top) Execute(_ []string) error {
	return t.run(func(ctx context.Context, cl *gnews.Client) ([]gnews.Article, error) {
		return cl.TopArticles(ctx, t.opts())
	})
}

// Search is a command to print articles matching keywords.
type Search struct {
	Query
}

// Execute runs the command.
func (s Search) Execute(args []string) error {
	keywords := strings.TrimSpace(strings.Join(args, " "))
	if keywords == "" {
		return errors.New("search term is empty")
	}

	return s.run(func(ctx context.Context, cl *gnews.Client) ([]gnews.Article, error) {
		return cl.Search(ctx, keywords, s.opts())
	})
}

// Find is a command to print the article with the exact title.
type Find struct {
	Query
}

// Execute runs the command.
func (f Find) Execute(args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		return errors.New("title is empty")
	}

	return f.run(func(ctx context.Context, cl *gnews.Client) ([]gnews.Article, error) {
		a, ok, err := cl.FindByTitle(ctx, title, f.opts())
		if err != nil || !ok {
			return nil, err
		}
		return []gnews.Article{a}, nil
	})
}

var articlesTmpl = template.Must(template.New("articles").Parse(`{{range $i, $a := .}}
{{$a.Title}}
  {{$a.Source.Name}}, {{$a.PublishedAt}}
  {{$a.URL}}
{{- if $a.Description}}
  {{$a.Description}}
{{- end}}
{{else}}No articles found.
{{end}}`))

func printArticles(w io.Writer, articles []gnews.Article, asJSON bool) error {
	if asJSON {
		if articles == nil {
			articles = []gnews.Article{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(articles); err != nil {
			return fmt.Errorf("encode articles: %w", err)
		}
		return nil
	}

	if err := articlesTmpl.Execute(w, articles); err != nil {
		return fmt.Errorf("print articles: %w", err)
	}
	return nil
}
