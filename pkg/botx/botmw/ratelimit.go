package botmw

import (
	"context"
	"sync"
	"time"

	"github.com/Semior001/headlines/pkg/botx"
	"golang.org/x/time/rate"
)

// RateLimit limits the rate of requests per chat. Requests over the limit
// are answered with msg without calling the handler.
func RateLimit(every time.Duration, burst int, msg string) botx.Middleware {
	l := &limiters{every: rate.Every(every), burst: burst, chats: map[string]*rate.Limiter{}}

	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			if !l.get(req.Chat.ID).Allow() {
				return []botx.Response{{ChatID: req.Chat.ID, Text: msg}}, nil
			}

			return next(ctx, req)
		}
	}
}

type limiters struct {
	every rate.Limit
	burst int

	mu    sync.Mutex
	chats map[string]*rate.Limiter
}

func (l *limiters) get(chatID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.chats[chatID]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.chats[chatID] = lim
	}

	return lim
}
