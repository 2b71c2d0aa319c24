package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHTTPClient_AcceptHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept"), "text/html") {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		para := `<p>The city opened a new public library on Monday, ` +
			`it is open until ten in the evening on weekdays and hosts thousands of books.</p>`
		_, _ = w.Write([]byte(`<html><head><title>Library</title></head><body><article><h1>Library</h1>` +
			strings.Repeat(para, 8) + `</article></body></html>`))
	}))
	defer ts.Close()

	lg := slog.New(logx.NoOp())

	svc := reader.NewService(lg, httpClient(lg, http.Client{}, acceptHTML), nil, reader.Extractor{})
	page, err := svc.Read(context.Background(), gnews.Article{URL: ts.URL})
	require.NoError(t, err)
	assert.Contains(t, page.Content, "opened a new public library")

	svc = reader.NewService(lg, httpClient(lg, http.Client{}, acceptJSON), nil, reader.Extractor{})
	_, err = svc.Read(context.Background(), gnews.Article{URL: ts.URL})
	assert.ErrorContains(t, err, "bad status code: 406")
}

func TestGNews_Client(t *testing.T) {
	assert.Equal(t, gnews.DefaultBaseURL, GNews{}.baseURL())
	assert.Equal(t, "http://localhost:8080", GNews{BaseURL: "http://localhost:8080"}.baseURL())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, acceptJSON, r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"totalArticles":0,"articles":[]}`))
	}))
	defer ts.Close()

	articles, err := GNews{Token: "secret", BaseURL: ts.URL}.Client(slog.New(logx.NoOp())).
		TopArticles(context.Background(), gnews.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, articles)
}
