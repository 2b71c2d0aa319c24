// Package gnews provides a client for the GNews article search API.
package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// DefaultBaseURL is the root of the public GNews API.
const DefaultBaseURL = "https://gnews.io/api/v4"

// Default values for QueryOptions.
const (
	DefaultCount = 10
	DefaultLang  = "en"
)

// QueryOptions defines filters for a request.
// Zero values stand for the defaults, empty Topic and Country are not sent.
type QueryOptions struct {
	Count   int
	Lang    string
	Topic   string
	Country string
}

func (o QueryOptions) withDefaults() QueryOptions {
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	return o
}

// Client makes requests to the GNews API.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	log     *slog.Logger
	cl      *http.Client
	baseURL string
	token   string
}

// NewClient creates new Client.
func NewClient(lg *slog.Logger, cl *http.Client, baseURL, token string) *Client {
	return &Client{
		log:     lg,
		cl:      cl,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// TopArticles returns top headlines, filtered by language and topic.
func (c *Client) TopArticles(ctx context.Context, opts QueryOptions) ([]Article, error) {
	opts = opts.withDefaults()

	q := c.query(opts)
	if opts.Topic != "" {
		q.Set("topic", opts.Topic)
	}

	return c.list(ctx, "/top-headlines", q)
}

// Search returns articles matching the keywords. Keywords are sent as is,
// caller must make sure they are not empty.
func (c *Client) Search(ctx context.Context, keywords string, opts QueryOptions) ([]Article, error) {
	opts = opts.withDefaults()

	q := c.query(opts)
	q.Set("q", keywords)
	if opts.Topic != "" {
		q.Set("topic", opts.Topic)
	}
	if opts.Country != "" {
		q.Set("country", opts.Country)
	}

	return c.list(ctx, "/search", q)
}

// FindByTitle searches for the exact title and returns the first article
// with exactly the same title. Topic and Country are ignored.
// The returned bool is false if no article matched.
func (c *Client) FindByTitle(ctx context.Context, title string, opts QueryOptions) (Article, bool, error) {
	opts = opts.withDefaults()

	q := c.query(opts)
	q.Set("q", `"`+title+`"`)

	articles, err := c.list(ctx, "/search", q)
	if err != nil {
		return Article{}, false, err
	}

	a, ok := lo.Find(articles, func(a Article) bool { return a.Title == title })
	return a, ok, nil
}

func (c *Client) query(opts QueryOptions) url.Values {
	q := url.Values{}
	q.Set("token", c.token)
	q.Set("lang", opts.Lang)
	q.Set("max", strconv.Itoa(opts.Count))
	return q
}

// maxErrorBody limits the amount of bytes read from an unsuccessful response.
const maxErrorBody = 4096

func (c *Client) list(ctx context.Context, path string, q url.Values) ([]Article, error) {
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}

	c.log.DebugCtx(ctx, "requesting articles",
		slog.String("path", path),
		slog.String("q", q.Get("q")),
		slog.String("lang", q.Get("lang")),
		slog.String("max", q.Get("max")),
	)

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(io.LimitReader(resp.Body, maxErrorBody)),
		}
	}

	var lr listResponse
	if err = json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("decode response: %w", err)}
	}

	articles, err := lr.articles()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	c.log.DebugCtx(ctx, "articles received",
		slog.String("path", path),
		slog.Int("count", len(articles)),
		slog.Int("total", lr.TotalArticles),
	)

	return articles, nil
}

// errorMessage extracts messages from the API error body, which is either
// {"errors": ["..."]} or {"errors": {"field": "..."}}.
func errorMessage(rd io.Reader) string {
	var body struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.NewDecoder(rd).Decode(&body); err != nil || len(body.Errors) == 0 {
		return ""
	}

	var list []string
	if err := json.Unmarshal(body.Errors, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var fields map[string]string
	if err := json.Unmarshal(body.Errors, &fields); err == nil {
		msgs := lo.MapToSlice(fields, func(k, v string) string { return k + ": " + v })
		sort.Strings(msgs)
		return strings.Join(msgs, "; ")
	}

	return ""
}
