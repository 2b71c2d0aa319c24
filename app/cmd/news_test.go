package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery(t *testing.T, h http.HandlerFunc) (Query, *bytes.Buffer) {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	out := &bytes.Buffer{}
	return Query{
		GNews:   GNews{Token: "secret", BaseURL: ts.URL},
		Count:   2,
		Lang:    "en",
		Timeout: time.Minute,
		out:     out,
	}, out
}

func writeArticles(t *testing.T, w http.ResponseWriter, articles ...gnews.Article) {
	err := json.NewEncoder(w).Encode(map[string]any{"totalArticles": len(articles), "articles": articles})
	require.NoError(t, err)
}

var article = gnews.Article{
	ID:          "1",
	Title:       "Title",
	Description: "Description",
	URL:         "https://example.com/1",
	PublishedAt: "2024-03-01T10:15:00Z",
	Lang:        "en",
	Source:      gnews.Source{Name: "Source"},
}

func TestTop_Execute(t *testing.T) {
	q, out := testQuery(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("max"))
		assert.Equal(t, "headlines", r.Header.Get("User-Agent"))
		writeArticles(t, w, article)
	})

	require.NoError(t, Top{Query: q}.Execute(nil))
	assert.Equal(t, "\nTitle\n  Source, 2024-03-01T10:15:00Z\n  https://example.com/1\n  Description\n", out.String())
}

func TestSearch_Execute(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		q, out := testQuery(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "climate change", r.URL.Query().Get("q"))
			writeArticles(t, w, article)
		})
		q.JSON = true

		require.NoError(t, Search{Query: q}.Execute([]string{"climate", "change"}))

		var got []gnews.Article
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, []gnews.Article{article}, got)
	})

	t.Run("empty", func(t *testing.T) {
		q, _ := testQuery(t, func(http.ResponseWriter, *http.Request) { t.Fatal("must not be called") })
		assert.Error(t, Search{Query: q}.Execute([]string{" "}))
	})

	t.Run("status", func(t *testing.T) {
		q, _ := testQuery(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		err := Search{Query: q}.Execute([]string{"foo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 403")

		var te *gnews.TransportError
		assert.True(t, errors.As(err, &te))
	})
}

func TestFind_Execute(t *testing.T) {
	q, out := testQuery(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"Other"`, r.URL.Query().Get("q"))
		writeArticles(t, w, article)
	})

	require.NoError(t, Find{Query: q}.Execute([]string{"Other"}))
	assert.Equal(t, "No articles found.\n", out.String())
}
