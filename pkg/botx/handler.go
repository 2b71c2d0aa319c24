package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// Response is a response from handler.
type Response struct {
	ReplyToMessageID string
	ChatID           string
	Text             string
}

// Request is a request for handler.
type Request struct {
	MessageID string
	Chat      Chat
	Text      string
}

// Command returns the leading command of the request text without
// the bot mention, e.g. "/search" for "/search@newsbot golang".
// Empty if the text is not a command.
func (r Request) Command() string {
	if !strings.HasPrefix(r.Text, "/") {
		return ""
	}

	cmd, _, _ := strings.Cut(r.Text, " ")
	cmd, _, _ = strings.Cut(cmd, "\n")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

// Args returns the text after the command, as sent by the user.
func (r Request) Args() string {
	if r.Command() == "" {
		return r.Text
	}

	idx := strings.IndexAny(r.Text, " \n")
	if idx < 0 {
		return ""
	}
	return r.Text[idx+1:]
}

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
