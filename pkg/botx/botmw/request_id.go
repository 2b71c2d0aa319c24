package botmw

import (
	"context"
	"fmt"

	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/google/uuid"
)

// RequestID puts a new request id to the context, unless the context
// already carries one.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			if _, ok := logx.RequestIDFromContext(ctx); !ok {
				ctx = logx.ContextWithRequestID(ctx, uuid.New().String())
			}

			return next(ctx, req)
		}
	}
}

// AppendRequestIDOnError marks replies of a failed request with the request
// id, so that the user can refer to it. Replies to other chats are left as is.
// If the handler did not reply to the requester, notice is sent instead.
func AppendRequestIDOnError(notice string) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			resps, err := next(ctx, req)
			if err == nil {
				return resps, nil
			}

			suffix := ""
			if reqID, ok := logx.RequestIDFromContext(ctx); ok {
				suffix = fmt.Sprintf("\n\nRequest ID: `%s`", reqID)
			}

			replied := false
			for i := range resps {
				if resps[i].ChatID != req.Chat.ID {
					continue
				}
				resps[i].Text += suffix
				replied = true
			}

			if !replied {
				resps = append(resps, botx.Response{
					ChatID:           req.Chat.ID,
					ReplyToMessageID: req.MessageID,
					Text:             notice + suffix,
				})
			}

			return resps, err
		}
	}
}
