package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtrl_SendDigest(t *testing.T) {
	env := newTestEnv(t, func(c *Ctrl) { c.AuthToken = "secret" })
	ctx := context.Background()

	env.user(t, "1", store.Prefs{Lang: "de", Count: 3})
	env.user(t, "2", store.Prefs{Lang: "fr"})
	require.NoError(t, env.store.Put(ctx, store.User{ChatID: "3", Authorized: true}))
	require.NoError(t, env.store.Put(ctx, store.User{ChatID: "4", Subscribed: true}))
	env.user(t, "5", store.Prefs{Lang: "it"})

	env.news.TopArticlesFunc = func(_ context.Context, opts gnews.QueryOptions) ([]gnews.Article, error) {
		switch opts.Lang {
		case "fr":
			return nil, &gnews.TransportError{StatusCode: 429}
		case "it":
			return nil, nil
		}
		return testArticles(opts.Count), nil
	}

	require.NoError(t, env.ctrl.SendDigest(ctx))

	news := env.news.TopArticlesCalls()
	require.Len(t, news, 3)
	assert.Equal(t, gnews.QueryOptions{Count: 3, Lang: "de"}, news[0].Opts)
	assert.Equal(t, gnews.QueryOptions{Count: defaultTopCount, Lang: "fr"}, news[1].Opts)

	calls := env.api.SendMessageCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "1", calls[0].Resp.ChatID)
	assert.Contains(t, calls[0].Resp.Text, "*Your news digest*")
	assert.Contains(t, calls[0].Resp.Text, "*3.* Title 3")

	a, ok := env.ctrl.Sessions.Article("1", 3)
	require.True(t, ok)
	assert.Equal(t, "Title 3", a.Title)
}

func TestCtrl_SendDigest_SendFailed(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "1", store.Prefs{})
	env.user(t, "2", store.Prefs{})

	env.news.TopArticlesFunc = func(context.Context, gnews.QueryOptions) ([]gnews.Article, error) {
		return testArticles(1), nil
	}
	env.api.SendMessageFunc = func(_ context.Context, resp botx.Response) error {
		if resp.ChatID == "1" {
			return errors.New("bot was blocked by the user")
		}
		return nil
	}

	require.NoError(t, env.ctrl.SendDigest(context.Background()))
	assert.Len(t, env.api.SendMessageCalls(), 2)
}

func TestCtrl_SendDigest_Stalled(t *testing.T) {
	env := newTestEnv(t, func(c *Ctrl) { c.HandlerTimeout = 50 * time.Millisecond })
	env.user(t, "1", store.Prefs{Lang: "de"})
	env.user(t, "2", store.Prefs{})

	env.news.TopArticlesFunc = func(ctx context.Context, opts gnews.QueryOptions) ([]gnews.Article, error) {
		if opts.Lang == "de" {
			<-ctx.Done()
			return nil, &gnews.TransportError{Err: ctx.Err()}
		}
		return testArticles(1), nil
	}

	done := make(chan error, 1)
	go func() { done <- env.ctrl.SendDigest(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("digest is blocked by a stalled request")
	}

	assert.Len(t, env.news.TopArticlesCalls(), 2)
	calls := env.api.SendMessageCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "2", calls[0].Resp.ChatID)
}

func TestCtrl_RunDigest(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "1", store.Prefs{})

	env.news.TopArticlesFunc = func(context.Context, gnews.QueryOptions) ([]gnews.Article, error) {
		return testArticles(1), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.ctrl.RunDigest(ctx, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return len(env.api.SendMessageCalls()) >= 2 },
		time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("digest loop did not stop")
	}
}
