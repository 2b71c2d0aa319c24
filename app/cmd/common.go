// Package cmd contains commands for the application.
package cmd

import (
	"net/http"

	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// GNews defines options to access the news API.
type GNews struct {
	Token   string `long:"token" env:"TOKEN" required:"true" description:"GNews API token"`
	BaseURL string `long:"base-url" env:"BASE_URL" description:"GNews API base url, the public API if empty"`
}

const userAgent = "headlines"

// accepted media types of outbound requests
const (
	acceptJSON = "application/json"
	acceptHTML = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"
)

// Client makes a GNews client. Requests are not time limited by the
// client, the caller's context owns cancellation.
func (g GNews) Client(lg *slog.Logger) *gnews.Client {
	return gnews.NewClient(
		lg.With(slog.String("prefix", "gnews")),
		httpClient(lg.With(slog.String("prefix", "gnews-http")), http.Client{}, acceptJSON),
		g.baseURL(),
		g.Token,
	)
}

func (g GNews) baseURL() string {
	if g.BaseURL == "" {
		return gnews.DefaultBaseURL
	}
	return g.BaseURL
}

func httpClient(lg *slog.Logger, base http.Client, accept string) *http.Client {
	return requester.New(base,
		middleware.Header("Accept", accept),
		middleware.Header("User-Agent", userAgent),
		logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
			Level:             slog.LevelDebug,
			SecretHeaders:     []string{"Authorization"},
			SecretQueryParams: []string{"token"},
		}),
	).Client()
}
