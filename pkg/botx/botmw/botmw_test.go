package botmw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var testReq = botx.Request{Chat: botx.Chat{ID: "42", Username: "user"}, Text: "/top"}

func TestRequestID(t *testing.T) {
	var ids []string
	h := RequestID()(func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		id, ok := logx.RequestIDFromContext(ctx)
		require.True(t, ok)
		ids = append(ids, id)
		return nil, nil
	})

	for i := 0; i < 2; i++ {
		_, err := h(context.Background(), testReq)
		require.NoError(t, err)
	}

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])

	_, err := h(logx.ContextWithRequestID(context.Background(), "digest-1"), testReq)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, "digest-1", ids[2], "id from context must be kept")
}

func TestAppendRequestIDOnError(t *testing.T) {
	ctx := logx.ContextWithRequestID(context.Background(), "req-id")
	errFailed := errors.New("failed")

	t.Run("success is untouched", func(t *testing.T) {
		h := AppendRequestIDOnError("Something went wrong.")(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
		})

		resps, err := h(ctx, testReq)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "ok"}}, resps)
	})

	t.Run("handler responded to requester", func(t *testing.T) {
		h := AppendRequestIDOnError("Something went wrong.")(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "try again"}}, errFailed
		})

		resps, err := h(ctx, testReq)
		assert.ErrorIs(t, err, errFailed)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "try again\n\nRequest ID: `req-id`"}}, resps)
	})

	t.Run("no response to requester", func(t *testing.T) {
		h := AppendRequestIDOnError("Something went wrong.")(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "1", Text: "user 42 failed"}}, errFailed
		})

		req := testReq
		req.MessageID = "7"

		resps, err := h(ctx, req)
		assert.ErrorIs(t, err, errFailed)
		assert.Equal(t, []botx.Response{
			{ChatID: "1", Text: "user 42 failed"},
			{ChatID: "42", ReplyToMessageID: "7", Text: "Something went wrong.\n\nRequest ID: `req-id`"},
		}, resps)
	})

	t.Run("no request id", func(t *testing.T) {
		h := AppendRequestIDOnError("Something went wrong.")(func(context.Context, botx.Request) ([]botx.Response, error) {
			return nil, errFailed
		})

		resps, err := h(context.Background(), testReq)
		assert.ErrorIs(t, err, errFailed)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "Something went wrong."}}, resps)
	})
}

func TestRecover(t *testing.T) {
	h := Recover(slog.New(logx.NoOp()))(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("boom")
	})

	resps, err := h(context.Background(), testReq)
	assert.Nil(t, resps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLogger(t *testing.T) {
	h := Logger(slog.New(logx.NoOp()))(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
	})

	resps, err := h(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "42", Text: "ok"}}, resps)
}

func TestTimeout(t *testing.T) {
	t.Run("timed out", func(t *testing.T) {
		h := Timeout(10 * time.Millisecond)(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return nil, ctx.Err()
		})

		_, err := h(context.Background(), testReq)
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("in time", func(t *testing.T) {
		h := Timeout(time.Second)(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
		})

		resps, err := h(context.Background(), testReq)
		require.NoError(t, err)
		assert.Len(t, resps, 1)
	})

	t.Run("disabled", func(t *testing.T) {
		for _, dur := range []time.Duration{0, -time.Second} {
			h := Timeout(dur)(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
				_, hasDeadline := ctx.Deadline()
				assert.False(t, hasDeadline)
				return []botx.Response{{ChatID: "42", Text: "ok"}}, ctx.Err()
			})

			resps, err := h(context.Background(), testReq)
			require.NoError(t, err)
			assert.Len(t, resps, 1)
		}
	})

	t.Run("parent cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		h := Timeout(time.Second)(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
			<-ctx.Done()
			time.Sleep(10 * time.Millisecond)
			return nil, nil
		})

		_, err := h(ctx, testReq)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRateLimit(t *testing.T) {
	calls := 0
	h := RateLimit(time.Hour, 2, "slow down")(func(_ context.Context, req botx.Request) ([]botx.Response, error) {
		calls++
		return []botx.Response{{ChatID: req.Chat.ID, Text: "ok"}}, nil
	})

	for i := 0; i < 2; i++ {
		resps, err := h(context.Background(), testReq)
		require.NoError(t, err)
		assert.Equal(t, "ok", resps[0].Text)
	}

	resps, err := h(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "42", Text: "slow down"}}, resps)

	other := testReq
	other.Chat.ID = "43"
	resps, err = h(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, "ok", resps[0].Text)

	assert.Equal(t, 3, calls)
}
