package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-pkgz/requester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestChain_RequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := slog.New(&Chain{
		Middleware: []Middleware{RequestID},
		Handler:    slog.HandlerOptions{}.NewJSONHandler(buf),
	})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	lg.With(slog.String("prefix", "test")).InfoCtx(ctx, "hello")
	lg.Info("no id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "test", first["prefix"])
	assert.NotContains(t, second, "request_id")
}

func TestNoOp(t *testing.T) {
	h := NoOp()
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, h.WithGroup("g").WithAttrs(nil).Handle(context.Background(), slog.Record{}))
}

func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		w.Header().Set("X-Api-Key", "response-secret")
		_, _ = w.Write([]byte(strings.Repeat("a", 2000)))
	}))
	defer ts.Close()

	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewJSONHandler(buf))

	cl := requester.New(http.Client{}, LoggingRoundTripper(lg, RoundTripperOpts{
		Level:             slog.LevelDebug,
		SecretHeaders:     []string{"X-Api-Key"},
		SecretQueryParams: []string{"token"},
	})).Client()

	resp, err := cl.Get(ts.URL + "/search?q=go&token=secret")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, body, 2000, "body must be readable in full after logging")

	logged := buf.String()
	assert.NotContains(t, logged, "secret")
	assert.Contains(t, logged, "token=%2A%2A%2A")
	assert.Contains(t, logged, "q=go")
	assert.Contains(t, logged, strings.Repeat("a", trimBodyAt)+"...")
}

func TestLoggingRoundTripper_NoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{}.NewTextHandler(buf))

	cl := requester.New(http.Client{}, LoggingRoundTripper(lg, RoundTripperOpts{Level: slog.LevelInfo})).Client()

	_, err := cl.Get(ts.URL)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no response received")
}

func TestMaskQuery(t *testing.T) {
	u, err := url.Parse("https://gnews.io/api/v4/search?q=a&token=x")
	require.NoError(t, err)
	assert.Equal(t, "https://gnews.io/api/v4/search?q=a&token=%2A%2A%2A", maskQuery(u, []string{"token"}))
	assert.Equal(t, "https://gnews.io/api/v4/search?q=a&token=x", maskQuery(u, []string{"apikey"}))
	assert.Equal(t, "", maskQuery(nil, nil))
}
