// Package botx provides interfaces and types to handle bot updates,
// with a chi-like router.
package botx

import (
	"context"
	"sync"
	"time"

	"github.com/Semior001/headlines/pkg/logx"
	"golang.org/x/exp/slog"
)

// API defines methods for an API interface to receive and send chat messages.
type API interface {
	Updates() <-chan Request
	SendMessage(ctx context.Context, resp Response) error
}

// Bot defines parameters for running a bot over some API.
type Bot struct {
	h   Handler
	api API
	Options
}

// NewBot creates a new Bot.
func NewBot(h Handler, api API, opts ...Option) *Bot {
	options := Options{
		Workers: 1,
		Logger:  slog.New(logx.NoOp()),
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Bot{
		h:       h,
		api:     api,
		Options: options,
	}
}

// Run starts updates listener. It returns when the context is done
// or the updates channel is closed.
func (b *Bot) Run(ctx context.Context) {
	wg := &sync.WaitGroup{}
	wg.Add(b.Workers)

	for i := 0; i < b.Workers; i++ {
		go func(idx int) {
			b.Logger.InfoCtx(ctx, "starting worker", slog.Int("worker", idx))

			defer func() {
				b.Logger.InfoCtx(ctx, "stopping worker", slog.Int("worker", idx))
				wg.Done()
			}()

			for {
				select {
				case <-ctx.Done():
					return
				case req, ok := <-b.api.Updates():
					if !ok {
						return
					}
					b.handleUpdate(ctx, req)
				}
			}
		}(i)
	}

	wg.Wait()
}

// handleUpdate runs the handler and sends its responses, empty
// responses are skipped.
func (b *Bot) handleUpdate(ctx context.Context, req Request) {
	start := time.Now()
	resps, err := b.h(ctx, req)
	if err != nil {
		b.Logger.ErrorCtx(ctx, "failed to handle request",
			slog.String("chat_id", req.Chat.ID),
			slog.String("command", req.Command()),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("err", err))
	}

	for _, resp := range resps {
		if resp.Text == "" {
			b.Logger.WarnCtx(ctx, "skipping empty response", slog.String("chat_id", resp.ChatID))
			continue
		}

		if err := b.api.SendMessage(ctx, resp); err != nil {
			b.Logger.WarnCtx(ctx, "failed to send message",
				slog.String("chat_id", resp.ChatID),
				slog.Any("err", err))
		}
	}
}
