// Package reader fetches the full text of news articles and summarizes them.
package reader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Semior001/headlines/pkg/gnews"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"golang.org/x/exp/slog"
)

// ErrSummaryDisabled is returned when no summarizer is configured.
var ErrSummaryDisabled = errors.New("summaries are disabled")

// Service reads articles from their source pages.
type Service struct {
	log       *slog.Logger
	cl        *http.Client
	chatGPT   *ChatGPT
	extractor Extractor
}

// NewService creates new service. chatGPT may be nil, then summaries are disabled.
func NewService(lg *slog.Logger, cl *http.Client, chatGPT *ChatGPT, extractor Extractor) *Service {
	return &Service{
		log:       lg,
		cl:        cl,
		chatGPT:   chatGPT,
		extractor: extractor,
	}
}

// SummariesEnabled reports whether Summary can be used.
func (s *Service) SummariesEnabled() bool { return s.chatGPT != nil }

// GPTCacheStat returns cache stats.
func (s *Service) GPTCacheStat() cache.Stats {
	if s.chatGPT == nil {
		return cache.Stats{}
	}
	return s.chatGPT.CacheStat()
}

// Read fetches the page of the article and extracts its readable content.
func (s *Service) Read(ctx context.Context, article gnews.Article) (Page, error) {
	s.log.DebugCtx(ctx, "reading article", slog.String("url", article.URL))

	u, err := url.Parse(article.URL)
	if err != nil {
		return Page{}, fmt.Errorf("parse article url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Page{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	page, err := s.extractor.Extract(resp.Body, u)
	if err != nil {
		return Page{}, fmt.Errorf("extract article: %w", err)
	}

	if page.Title == "" {
		page.Title = article.Title
	}

	return page, nil
}

// Summary returns bullet points of the article's page.
func (s *Service) Summary(ctx context.Context, article gnews.Article) (string, error) {
	if s.chatGPT == nil {
		return "", ErrSummaryDisabled
	}

	page, err := s.Read(ctx, article)
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}

	bp, err := s.chatGPT.BulletPoints(ctx, page)
	if err != nil {
		return "", fmt.Errorf("get bullet points: %w", err)
	}

	return bp, nil
}
