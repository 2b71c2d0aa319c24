// Package bot contains routers and controllers for bots.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/botx/botmw"
	"github.com/Semior001/headlines/pkg/gnews"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_news_client.go . NewsClient
//go:generate moq -out mock_reader.go . Reader
//go:generate moq -out mock_api.go -pkg bot ../../pkg/botx API

// NewsClient provides articles from the news API.
type NewsClient interface {
	TopArticles(ctx context.Context, opts gnews.QueryOptions) ([]gnews.Article, error)
	Search(ctx context.Context, keywords string, opts gnews.QueryOptions) ([]gnews.Article, error)
	FindByTitle(ctx context.Context, title string, opts gnews.QueryOptions) (gnews.Article, bool, error)
}

// Reader reads articles from their source pages.
type Reader interface {
	Read(ctx context.Context, article gnews.Article) (reader.Page, error)
	Summary(ctx context.Context, article gnews.Article) (string, error)
	SummariesEnabled() bool
	GPTCacheStat() cache.Stats
}

// RateLimit defines the allowed rate of news requests per chat.
// Zero Every disables the limit.
type RateLimit struct {
	Every time.Duration
	Burst int
}

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	Store          store.Interface
	News           NewsClient
	Reader         Reader
	Sessions       *Sessions
	API            botx.API
	AdminIDs       []string
	AuthToken      string
	HandlerTimeout time.Duration
	RateLimit      RateLimit
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(errorNotice),
		botmw.Recover(c.Logger),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
		c.ensureAuthorized,
	)

	limited := c.rateLimit()

	rtr.NotFound(limited(c.fallback))
	rtr.Add("/start", c.start)
	rtr.Add("/stop", c.stop)
	rtr.Add("/help", c.help)
	rtr.Add("/read", c.read)
	rtr.Add("/settings", c.settings)
	rtr.Add("/lang", c.lang)
	rtr.Add("/country", c.country)
	rtr.Add("/topic", c.topic)
	rtr.Add("/count", c.count)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(limited)

		rtr.Add("/top", c.top)
		rtr.Add("/search", c.search)
		rtr.Add("/find", c.find)
		rtr.Add("/summary", c.summary)
	})

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(c.ensureAdmin)

		rtr.Add("/list", c.list)
		rtr.Add("/delete", c.delete)
		rtr.Add("/cache", c.cacheStats)
	})

	return rtr
}

const errorNotice = "Something went wrong. Please, ask admin for help."

const rateLimitedMsg = "Too many requests, please, wait a bit before asking for news again."

// rateLimit returns a single limiter for all news requests of a chat.
func (c *Ctrl) rateLimit() botx.Middleware {
	if c.RateLimit.Every <= 0 {
		return func(h botx.Handler) botx.Handler { return h }
	}
	return botmw.RateLimit(c.RateLimit.Every, c.RateLimit.Burst, rateLimitedMsg)
}

func (c *Ctrl) start(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return c.register(ctx, req)
	}

	u.Subscribed = true
	if err := c.Store.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   "You have been subscribed to the news digest.\n\n" + helpText,
	}}, nil
}

func (c *Ctrl) stop(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, errors.New("no user in context")
	}

	u.Subscribed = false
	if err := c.Store.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   "You will no longer receive the news digest.",
	}}, nil
}

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return []botx.Response{{ChatID: req.Chat.ID, Text: helpText}}, nil
}

// fallback searches for plain text messages and shows help for unknown commands.
func (c *Ctrl) fallback(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	if req.Command() != "" {
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "Unknown command.\n\n" + helpText,
		}}, nil
	}

	return c.search(ctx, req)
}

func (c *Ctrl) ensureAdmin(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.AdminIDs, req.Chat.ID) {
			return nil, nil
		}

		return h(ctx, req)
	}
}

func (c *Ctrl) ensureAuthorized(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		u, err := c.Store.Get(ctx, req.Chat.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.register(ctx, req)
			}

			return nil, fmt.Errorf("get user: %w", err)
		}

		if !u.Authorized && c.AuthToken != "" {
			if req.Text != c.AuthToken {
				return []botx.Response{{
					ChatID: req.Chat.ID,
					Text:   "You are not authorized, please provide a token.",
				}}, nil
			}

			u.Authorized = true
			u.Subscribed = true

			if err := c.Store.Put(ctx, u); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}

			return []botx.Response{{
				ChatID: req.Chat.ID,
				Text:   "You are now authorized.\n\n" + helpText,
			}}, nil
		}

		return h(contextWithUser(ctx, u), req)
	}
}

// register adds a new user. Without an auth token, everyone is authorized.
func (c *Ctrl) register(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u := store.User{
		ChatID:     req.Chat.ID,
		Username:   req.Chat.Username,
		Authorized: c.AuthToken == "",
		Subscribed: c.AuthToken == "",
	}

	if err := c.Store.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}

	if err := c.NotifyAdmins(ctx, fmt.Sprintf("new user: %s", escapeMarkdown(req.Chat.Username))); err != nil {
		c.Logger.WarnCtx(ctx, "notify admins about registered user", slog.Any("err", err))
	}

	if u.Authorized {
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "Hello! I can show you the latest headlines and search for news.\n\n" + helpText,
		}}, nil
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text: "Hello! In order to read the news, you need to provide a token,\n" +
			"please ask admin for it and then send it to me.",
	}}, nil
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{
			ChatID: adminID,
			Text:   msg,
		}); err != nil {
			return fmt.Errorf("send message to admin: %w", err)
		}
	}

	return nil
}

type userKey struct{}

func userFromContext(ctx context.Context) (store.User, bool) {
	u, ok := ctx.Value(userKey{}).(store.User)
	return u, ok
}

func contextWithUser(ctx context.Context, u store.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}
