package bot

import (
	"time"

	"github.com/Semior001/headlines/pkg/gnews"
	cache "github.com/go-pkgz/expirable-cache/v2"
)

// Sessions keeps the last list of articles shown in each chat,
// so that the user can open an article by its number.
type Sessions struct {
	cache cache.Cache[string, []gnews.Article]
}

// NewSessions makes new Sessions, lists expire after ttl,
// at most maxChats lists are kept.
func NewSessions(ttl time.Duration, maxChats int) *Sessions {
	return &Sessions{
		cache: cache.NewCache[string, []gnews.Article]().
			WithTTL(ttl).
			WithMaxKeys(maxChats).
			WithLRU(),
	}
}

// Put replaces the list of the chat.
func (s *Sessions) Put(chatID string, articles []gnews.Article) {
	s.cache.Set(chatID, articles, 0)
}

// Article returns the n-th (starting from 1) article of the chat's list.
func (s *Sessions) Article(chatID string, n int) (gnews.Article, bool) {
	articles, ok := s.cache.Get(chatID)
	if !ok || n < 1 || n > len(articles) {
		return gnews.Article{}, false
	}
	return articles[n-1], true
}

// Stat returns statistics of the underlying cache.
func (s *Sessions) Stat() cache.Stats { return s.cache.Stat() }
