package gnews

import (
	"errors"
	"fmt"
)

// Article is a single news item as returned by the API.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Lang        string `json:"lang"`
	Source      Source `json:"source"`
}

// Source describes the publisher of an article.
type Source struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Country string `json:"country"`
}

// Topics lists the categories accepted by the "topic" filter.
var Topics = []string{
	"general", "world", "nation", "business", "technology",
	"entertainment", "sports", "science", "health",
}

// listResponse is the wire shape of both /top-headlines and /search.
// Pointers distinguish absent (or null) fields from empty strings.
type listResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      *[]wireArticle `json:"articles"`
}

type wireArticle struct {
	ID          *string     `json:"id"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Content     *string     `json:"content"`
	URL         *string     `json:"url"`
	Image       *string     `json:"image"`
	PublishedAt *string     `json:"publishedAt"`
	Lang        *string     `json:"lang"`
	Source      *wireSource `json:"source"`
}

type wireSource struct {
	ID      *string `json:"id"`
	Name    *string `json:"name"`
	URL     *string `json:"url"`
	Country *string `json:"country"`
}

// errMissingArticles is reported when the response has no "articles" list.
var errMissingArticles = errors.New(`missing "articles" field`)

func (r listResponse) articles() ([]Article, error) {
	if r.Articles == nil {
		return nil, errMissingArticles
	}

	result := make([]Article, 0, len(*r.Articles))
	for i, wa := range *r.Articles {
		a, err := wa.article()
		if err != nil {
			return nil, fmt.Errorf("article #%d: %w", i, err)
		}
		result = append(result, a)
	}

	return result, nil
}

func (w wireArticle) article() (Article, error) {
	if w.Source == nil {
		return Article{}, errors.New(`missing "source" field`)
	}

	fields := []struct {
		name string
		val  *string
	}{
		{"id", w.ID},
		{"title", w.Title},
		{"description", w.Description},
		{"content", w.Content},
		{"url", w.URL},
		{"image", w.Image},
		{"publishedAt", w.PublishedAt},
		{"lang", w.Lang},
		{"source.id", w.Source.ID},
		{"source.name", w.Source.Name},
		{"source.url", w.Source.URL},
		{"source.country", w.Source.Country},
	}

	for _, f := range fields {
		if f.val == nil {
			return Article{}, fmt.Errorf("missing %q field", f.name)
		}
	}

	return Article{
		ID:          *w.ID,
		Title:       *w.Title,
		Description: *w.Description,
		Content:     *w.Content,
		URL:         *w.URL,
		Image:       *w.Image,
		PublishedAt: *w.PublishedAt,
		Lang:        *w.Lang,
		Source: Source{
			ID:      *w.Source.ID,
			Name:    *w.Source.Name,
			URL:     *w.Source.URL,
			Country: *w.Source.Country,
		},
	}, nil
}
