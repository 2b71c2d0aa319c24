package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// RunDigest sends the digest to subscribers every interval until
// the context is done.
func (c *Ctrl) RunDigest(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ctx := logx.ContextWithRequestID(ctx, uuid.New().String())
			if err := c.SendDigest(ctx); err != nil {
				c.Logger.WarnCtx(ctx, "failed to send digest", slog.Any("err", err))
			}
		}
	}
}

// SendDigest sends top headlines, according to their preferences, to every
// authorized subscriber. A failure for a single user does not stop the rest.
func (c *Ctrl) SendDigest(ctx context.Context) error {
	users, err := c.Store.List(ctx, store.ListRequest{OnlySubscribed: true})
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	sent := 0
	for _, u := range users {
		if !u.Authorized && c.AuthToken != "" {
			continue
		}

		if err := c.sendDigestTo(ctx, u); err != nil {
			c.Logger.WarnCtx(ctx, "failed to send digest to user",
				slog.String("chat_id", u.ChatID), slog.Any("err", err))
			continue
		}
		sent++
	}

	c.Logger.InfoCtx(ctx, "digest sent", slog.Int("subscribers", len(users)), slog.Int("sent", sent))
	return nil
}

// sendDigestTo is limited by the handler timeout, so that a stalled
// request does not hold up the rest of subscribers.
func (c *Ctrl) sendDigestTo(ctx context.Context, u store.User) error {
	if c.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.HandlerTimeout)
		defer cancel()
	}

	articles, err := c.News.TopArticles(ctx, queryOptions(u.Prefs, defaultTopCount))
	if err != nil {
		return fmt.Errorf("fetch top articles: %w", err)
	}

	if len(articles) == 0 {
		return nil
	}

	c.Sessions.Put(u.ChatID, articles)

	text, err := renderList("Your news digest", articles)
	if err != nil {
		return fmt.Errorf("render list: %w", err)
	}

	if err = c.API.SendMessage(ctx, botx.Response{ChatID: u.ChatID, Text: text}); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
