package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
)

func (c *Ctrl) list(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	users, err := c.Store.List(ctx, store.ListRequest{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sb := &strings.Builder{}
	_, _ = sb.WriteString("Users:\n")
	for _, u := range users {
		_, _ = fmt.Fprintf(sb, "id: %s, username: %s, authorized: %t, subscribed: %t\n",
			u.ChatID, escapeMarkdown(u.Username), u.Authorized, u.Subscribed)
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   sb.String(),
	}}, nil
}

func (c *Ctrl) delete(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	chatID := strings.TrimSpace(req.Args())
	if chatID == "" || strings.ContainsAny(chatID, " \n") {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Usage: /delete <chat id>"}}, nil
	}

	if err := c.Store.Delete(ctx, chatID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []botx.Response{{
				ChatID: req.Chat.ID,
				Text:   fmt.Sprintf("User with id %s not found.", chatID),
			}}, nil
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   fmt.Sprintf("User with id %s was deleted.", chatID),
	}}, nil
}

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	gpt := c.Reader.GPTCacheStat()
	sess := c.Sessions.Stat()
	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text: fmt.Sprintf("summaries: hits: %d, misses: %d, evictions: %d, added: %d\n"+
			"sessions: hits: %d, misses: %d, evictions: %d, added: %d\n",
			gpt.Hits, gpt.Misses, gpt.Evicted, gpt.Added,
			sess.Hits, sess.Misses, sess.Evicted, sess.Added),
	}}, nil
}
