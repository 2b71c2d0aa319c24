package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// default amount of articles per request, when the user has no preference
const (
	defaultTopCount    = 10
	defaultSearchCount = 20
)

const (
	failedToLoadMsg = "Failed to load articles. Please, try again later."
	noArticlesMsg   = "No articles found."
)

func queryOptions(p store.Prefs, defaultCount int) gnews.QueryOptions {
	opts := gnews.QueryOptions{
		Count:   p.Count,
		Lang:    p.Lang,
		Topic:   p.Topic,
		Country: p.Country,
	}
	if opts.Count <= 0 {
		opts.Count = defaultCount
	}
	return opts
}

func (c *Ctrl) top(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u, _ := userFromContext(ctx)
	opts := queryOptions(u.Prefs, defaultTopCount)

	if topic := strings.ToLower(strings.TrimSpace(req.Args())); topic != "" {
		if !lo.Contains(gnews.Topics, topic) {
			return []botx.Response{{
				ChatID: req.Chat.ID,
				Text:   "Unknown topic. Available topics: " + strings.Join(gnews.Topics, ", ") + ".",
			}}, nil
		}
		opts.Topic = topic
	}

	articles, err := c.News.TopArticles(ctx, opts)
	if err != nil {
		return c.failedToLoad(req, fmt.Errorf("fetch top articles: %w", err))
	}

	header := "Top headlines"
	if opts.Topic != "" {
		header += " in " + opts.Topic
	}

	return c.respondList(req, header, articles)
}

func (c *Ctrl) search(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	keywords := strings.TrimSpace(req.Args())
	if keywords == "" {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Please, enter a search term."}}, nil
	}

	u, _ := userFromContext(ctx)

	articles, err := c.News.Search(ctx, keywords, queryOptions(u.Prefs, defaultSearchCount))
	if err != nil {
		return c.failedToLoad(req, fmt.Errorf("search articles: %w", err))
	}

	return c.respondList(req, "Results for "+escapeMarkdown(keywords), articles)
}

func (c *Ctrl) find(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	title := strings.TrimSpace(req.Args())
	if title == "" {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Please, enter the title of the article."}}, nil
	}

	u, _ := userFromContext(ctx)

	article, ok, err := c.News.FindByTitle(ctx, title, queryOptions(u.Prefs, defaultTopCount))
	if err != nil {
		return c.failedToLoad(req, fmt.Errorf("find article by title: %w", err))
	}

	if !ok {
		return []botx.Response{{ChatID: req.Chat.ID, ReplyToMessageID: req.MessageID, Text: "Article not found."}}, nil
	}

	c.Sessions.Put(req.Chat.ID, []gnews.Article{article})

	text, err := renderArticle(article, "")
	if err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, ReplyToMessageID: req.MessageID, Text: text}}, nil
}

func (c *Ctrl) read(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	article, resps := c.articleFromSession(req)
	if resps != nil {
		return resps, nil
	}

	var fullText string
	page, err := c.Reader.Read(ctx, article)
	switch {
	case err != nil:
		c.Logger.WarnCtx(ctx, "failed to read full article, falling back to the excerpt",
			slog.String("url", article.URL), slog.Any("err", err))
	case len(page.Content) > len(article.Content):
		fullText = page.Content
	}

	text, err := renderArticle(article, fullText)
	if err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}, nil
}

func (c *Ctrl) summary(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	if !c.Reader.SummariesEnabled() {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Summaries are not available."}}, nil
	}

	article, resps := c.articleFromSession(req)
	if resps != nil {
		return resps, nil
	}

	err := c.API.SendMessage(ctx, botx.Response{
		ChatID: req.Chat.ID,
		Text:   "I'm working on it, please wait...",
	})
	if err != nil {
		return nil, fmt.Errorf("send start message: %w", err)
	}

	bp, err := c.Reader.Summary(ctx, article)
	if err != nil {
		if errors.Is(err, reader.ErrTooManyTokens) {
			return []botx.Response{{
				ChatID: req.Chat.ID,
				Text: "The article is too long, I can't summarize it.\n" +
					"Article content should be less than 4000 words.",
			}}, nil
		}
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "Failed to summarize the article. Please, try again later.",
		}}, fmt.Errorf("summarize article: %w", err)
	}

	text, err := renderSummary(article, bp)
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}, nil
}

// articleFromSession returns the article by its number in the last list
// shown in the chat. Non-nil responses explain why there is no article.
func (c *Ctrl) articleFromSession(req botx.Request) (gnews.Article, []botx.Response) {
	n, err := strconv.Atoi(strings.TrimSpace(req.Args()))
	if err != nil || n < 1 {
		return gnews.Article{}, []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "Please, provide the number of the article from the list, e.g. " + req.Command() + " 1",
		}}
	}

	article, ok := c.Sessions.Article(req.Chat.ID, n)
	if !ok {
		return gnews.Article{}, []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   fmt.Sprintf("There is no article %d in the last list, use /top or /search first.", n),
		}}
	}

	return article, nil
}

// respondList replies to the request with the numbered list of articles.
func (c *Ctrl) respondList(req botx.Request, header string, articles []gnews.Article) ([]botx.Response, error) {
	if len(articles) == 0 {
		return []botx.Response{{ChatID: req.Chat.ID, ReplyToMessageID: req.MessageID, Text: noArticlesMsg}}, nil
	}

	c.Sessions.Put(req.Chat.ID, articles)

	text, err := renderList(header, articles)
	if err != nil {
		return nil, fmt.Errorf("render list: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, ReplyToMessageID: req.MessageID, Text: text}}, nil
}

// failedToLoad responds with a generic retryable notice, the error is
// returned to be logged and to append the request id to the notice.
func (c *Ctrl) failedToLoad(req botx.Request, err error) ([]botx.Response, error) {
	return []botx.Response{{ChatID: req.Chat.ID, Text: failedToLoadMsg}}, err
}
