package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/headlines/app/bot"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/store"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Run is a command to run the bot.
type Run struct {
	GNews GNews `group:"gnews" namespace:"gnews" env-namespace:"GNEWS"`

	Bot struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"6m" description:"timeout for requests"`
		Workers int           `long:"workers" env:"WORKERS" default:"10" description:"amount of concurrently handled updates"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" description:"telegram token"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

		AdminIDs  []string `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin IDs"`
		AuthToken string   `long:"auth-token" env:"AUTH_TOKEN" description:"token for authorizing requests"`

		RateLimit struct {
			Every time.Duration `long:"every" env:"EVERY" default:"10s" description:"interval between news requests of a chat, 0 to disable"`
			Burst int           `long:"burst" env:"BURST" default:"3" description:"amount of news requests a chat can make at once"`
		} `group:"rate-limit" namespace:"rate-limit" env-namespace:"RATE_LIMIT"`

		Sessions struct {
			TTL      time.Duration `long:"ttl" env:"TTL" default:"24h" description:"time to keep the last list of a chat"`
			MaxChats int           `long:"max-chats" env:"MAX_CHATS" default:"1000" description:"max amount of kept lists"`
		} `group:"sessions" namespace:"sessions" env-namespace:"SESSIONS"`

		DigestInterval time.Duration `long:"digest-interval" env:"DIGEST_INTERVAL" default:"24h" description:"interval between digests, 0 to disable"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`

	Reader struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"timeout for fetching article pages"`

		OpenAI struct {
			Token     string        `long:"token" env:"TOKEN" description:"OpenAI token, summaries are disabled if empty"`
			MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens for OpenAI"`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"reader" namespace:"reader" env-namespace:"READER"`

	StorePath string `long:"store-path" env:"STORE_PATH" default:"." description:"parent dir for bolt files"`
}

// Execute runs the command.
func (r Run) Execute(_ []string) error {
	lg := slog.Default()

	var gpt *reader.ChatGPT
	if r.Reader.OpenAI.Token != "" {
		gpt = reader.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: r.Reader.OpenAI.Timeout},
			r.Reader.OpenAI.Token,
			r.Reader.OpenAI.MaxTokens,
		)
	}

	rd := reader.NewService(
		lg.With(slog.String("prefix", "reader")),
		httpClient(lg.With(slog.String("prefix", "reader-http")), http.Client{Timeout: r.Reader.Timeout}, acceptHTML),
		gpt,
		reader.Extractor{},
	)

	s, err := store.NewBolt(r.StorePath)
	if err != nil {
		return fmt.Errorf("make store: %w", err)
	}

	defer func() {
		if err := s.Close(); err != nil {
			lg.Error("close bolt store", slog.Any("err", err))
		}
	}()

	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		r.Bot.Telegram.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:         lg.With(slog.String("prefix", "bot")),
		Store:          s,
		News:           r.GNews.Client(lg),
		Reader:         rd,
		Sessions:       bot.NewSessions(r.Bot.Sessions.TTL, r.Bot.Sessions.MaxChats),
		API:            api,
		AdminIDs:       r.Bot.AdminIDs,
		AuthToken:      r.Bot.AuthToken,
		HandlerTimeout: r.Bot.Timeout,
		RateLimit:      bot.RateLimit{Every: r.Bot.RateLimit.Every, Burst: r.Bot.RateLimit.Burst},
	}

	b := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(r.Bot.Workers),
	)

	if err := ctrl.NotifyAdmins(context.Background(), "bot started"); err != nil {
		return fmt.Errorf("notify admins about started bot: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case sig := <-sig:
			lg.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		b.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})
	if r.Bot.DigestInterval > 0 {
		ewg.Go(func() error {
			lg.Info("starting digest", slog.Duration("interval", r.Bot.DigestInterval))
			err := ctrl.RunDigest(ctx, r.Bot.DigestInterval)
			lg.Warn("digest stopped")
			return err
		})
	}

	// api runs out of errgroup, as it lives longer than the context
	// to notify admins about bot stopping
	apiStopped := make(chan struct{})
	go func() {
		lg.Info("starting telegram api")
		api.Run()
		lg.Warn("telegram api stopped listening for updates")
		close(apiStopped)
	}()

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		msg := fmt.Sprintf("bot stopped with error: %v", err)

		if sendErr := ctrl.NotifyAdmins(context.Background(), msg); sendErr != nil {
			return fmt.Errorf("notify admins about stopped bot (for reason: %v): %w", err, sendErr)
		}

		return err
	}

	if err := ctrl.NotifyAdmins(context.Background(), "bot stopped"); err != nil {
		return fmt.Errorf("notify admins about stopped bot: %w", err)
	}

	lg.Info("stopping telegram api")
	api.Stop()
	<-apiStopped
	lg.Info("telegram api stopped")

	return nil
}
