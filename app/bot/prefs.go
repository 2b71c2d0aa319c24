package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/gnews"
	"github.com/samber/lo"
)

// maxCount is the largest amount of articles the API returns at once.
const maxCount = 100

var twoLetterCode = regexp.MustCompile(`^[a-z]{2}$`)

// errInvalidPref is returned by setters to reject user input,
// its message is shown to the user.
type errInvalidPref string

func (e errInvalidPref) Error() string { return string(e) }

func (c *Ctrl) settings(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u, _ := userFromContext(ctx)
	return []botx.Response{{ChatID: req.Chat.ID, Text: describePrefs(u.Prefs)}}, nil
}

func (c *Ctrl) lang(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.updatePrefs(ctx, req, func(p *store.Prefs, arg string) error {
		if !twoLetterCode.MatchString(arg) {
			return errInvalidPref("Language must be a two-letter code, e.g. /lang en")
		}
		p.Lang = arg
		return nil
	})
}

func (c *Ctrl) country(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.updatePrefs(ctx, req, func(p *store.Prefs, arg string) error {
		switch {
		case arg == "none":
			p.Country = ""
		case twoLetterCode.MatchString(arg):
			p.Country = arg
		default:
			return errInvalidPref("Country must be a two-letter code or none, e.g. /country us")
		}
		return nil
	})
}

func (c *Ctrl) topic(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.updatePrefs(ctx, req, func(p *store.Prefs, arg string) error {
		switch {
		case arg == "none":
			p.Topic = ""
		case lo.Contains(gnews.Topics, arg):
			p.Topic = arg
		default:
			return errInvalidPref("Available topics: " + strings.Join(gnews.Topics, ", ") + ", or none.")
		}
		return nil
	})
}

func (c *Ctrl) count(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.updatePrefs(ctx, req, func(p *store.Prefs, arg string) error {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > maxCount {
			return errInvalidPref(fmt.Sprintf("Count must be a number from 1 to %d.", maxCount))
		}
		p.Count = n
		return nil
	})
}

// updatePrefs applies the setter to the user's preferences with the
// lowercased command argument. Without argument, current preferences are shown.
func (c *Ctrl) updatePrefs(
	ctx context.Context,
	req botx.Request,
	set func(p *store.Prefs, arg string) error,
) ([]botx.Response, error) {
	arg := strings.ToLower(strings.TrimSpace(req.Args()))
	if arg == "" {
		return c.settings(ctx, req)
	}

	u, err := c.Store.Update(ctx, req.Chat.ID, func(u *store.User) error { return set(&u.Prefs, arg) })
	if err != nil {
		var invalid errInvalidPref
		if errors.As(err, &invalid) {
			return []botx.Response{{ChatID: req.Chat.ID, Text: invalid.Error()}}, nil
		}
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: "Saved.\n\n" + describePrefs(u.Prefs)}}, nil
}

func describePrefs(p store.Prefs) string {
	opts := queryOptions(p, 0)

	lang := lo.Ternary(opts.Lang == "", gnews.DefaultLang+" (default)", opts.Lang)
	country := lo.Ternary(opts.Country == "", "any", opts.Country)
	topic := lo.Ternary(opts.Topic == "", "any", opts.Topic)
	count := lo.Ternary(opts.Count == 0,
		fmt.Sprintf("%d for headlines, %d for search (default)", defaultTopCount, defaultSearchCount),
		strconv.Itoa(opts.Count))

	return fmt.Sprintf("Your preferences:\nlanguage: %s\ncountry: %s\ntopic: %s\narticles per request: %s",
		lang, country, topic, count)
}
