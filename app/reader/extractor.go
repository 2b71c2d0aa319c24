package reader

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Page is the readable part of an article web page.
type Page struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

// Extractor extracts article from HTML page.
type Extractor struct{}

// Extract extracts article from an HTML page.
func (e Extractor) Extract(rd io.Reader, pageURL *url.URL) (Page, error) {
	doc, err := readability.FromReader(rd, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	p := Page{
		Title:    doc.Title,
		Excerpt:  doc.Excerpt,
		Content:  e.sanitize(doc.TextContent),
		Author:   doc.Byline,
		ImageURL: doc.Image,
	}
	if pageURL != nil {
		p.URL = pageURL.String()
	}

	return p, nil
}

var spaces = regexp.MustCompile(`\s+`)

func (e Extractor) sanitize(s string) string {
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
