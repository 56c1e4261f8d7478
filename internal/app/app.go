package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ykvlv/assistant-bot/internal/backend"
	"github.com/ykvlv/assistant-bot/internal/config"
	"github.com/ykvlv/assistant-bot/internal/dispatch"
	"github.com/ykvlv/assistant-bot/internal/intent"
	"github.com/ykvlv/assistant-bot/internal/langgate"
	"github.com/ykvlv/assistant-bot/internal/scheduler"
	"github.com/ykvlv/assistant-bot/internal/store"
	"github.com/ykvlv/assistant-bot/internal/telegram"
	"github.com/ykvlv/assistant-bot/internal/toggle"
)

const longPollTimeout = 30 // seconds

type App struct {
	cfg     config.Config
	log     *zap.Logger
	httpSrv *http.Server

	mu  sync.Mutex
	bot *tgbotapi.BotAPI

	lastUpdate atomic.Int64
	repo       store.Repo
	router     *telegram.Router
	sched      *scheduler.Scheduler
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	bot, err := a.newBot()
	if err != nil {
		return nil, err
	}
	a.bot = bot

	a.httpSrv = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      healthMux(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	return a, nil
}

func healthMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// newBot opens a Telegram session. Long polls get the poll window plus
// SendTimeout; every other call, sends included, gets SendTimeout.
func (a *App) newBot() (*tgbotapi.BotAPI, error) {
	client := telegram.NewHTTPClient(longPollTimeout*time.Second+a.cfg.SendTimeout, a.cfg.SendTimeout)
	bot, err := tgbotapi.NewBotAPIWithClient(a.cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram session: %w", err)
	}
	bot.Debug = false
	return bot, nil
}

func (a *App) currentBot() *tgbotapi.BotAPI {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bot
}

// Restart replaces the Telegram session. The update loop notices the old
// stream closing and resubscribes on the new session.
func (a *App) Restart(_ context.Context) error {
	bot, err := a.newBot()
	if err != nil {
		return err
	}
	a.mu.Lock()
	old := a.bot
	a.bot = bot
	a.mu.Unlock()

	a.router.SetBot(bot)
	old.StopReceivingUpdates()
	a.log.Info("telegram session restarted", zap.String("bot", bot.Self.UserName))
	return nil
}

// wire builds the domain components on top of an open store.
// The backend is built even when disabled, since the owner may enable it.
func (a *App) wire(repo store.Repo) {
	completer := backend.NewOpenAI(backend.Options{
		APIKey:     a.cfg.OpenAIKey,
		BaseURL:    a.cfg.OpenAIBaseURL,
		Model:      a.cfg.OpenAIModel,
		Timeout:    a.cfg.BackendTimeout,
		RatePerMin: a.cfg.BackendRatePerMin,
		Burst:      a.cfg.BackendBurst,
	}, a.log.Named("backend"))

	langs := a.cfg.Languages()
	disp := dispatch.New(dispatch.Deps{
		Store:   repo,
		Gate:    langgate.New(langgate.NewLinguaDetector(), langs),
		Router:  intent.NewRouter(langs, nil),
		Toggle:  toggle.New(a.cfg.OwnerID, a.cfg.EnableChatGPT),
		Backend: completer,
	}, a.log.Named("dispatch"))
	disp.SetRestarter(a)

	a.router = telegram.NewRouter(a.currentBot(), a.log.Named("telegram"), disp)
	a.sched = scheduler.New(repo, a.log.Named("scheduler"), a.router, scheduler.Options{
		Interval:    a.cfg.PollInterval,
		BatchSize:   a.cfg.BatchSize,
		SendTimeout: a.cfg.SendTimeout,
	})
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting assistant-bot",
		zap.String("db", a.cfg.DBDriver),
		zap.String("http", a.cfg.HTTPAddr),
		zap.Strings("languages", a.cfg.Languages()),
	)

	repo, err := store.Open(ctx, a.cfg.DBDriver, a.cfg.DSN())
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	defer func() { _ = a.repo.Close() }()
	a.log.Info("store ready")

	a.wire(repo)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("http server shutdown error", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		a.sched.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return a.receive(gctx)
	})

	err = g.Wait()
	a.log.Info("shutdown complete")
	return err
}

// receive consumes updates until ctx is done, resubscribing after a restart.
// Each update is handled on a bounded worker pool.
func (a *App) receive(ctx context.Context) error {
	workers := new(errgroup.Group)
	workers.SetLimit(a.cfg.Workers)
	defer func() { _ = workers.Wait() }()

	for {
		bot := a.currentBot()
		u := tgbotapi.NewUpdate(int(a.lastUpdate.Load()) + 1)
		u.Timeout = longPollTimeout
		updCh := bot.GetUpdatesChan(u)

		if done := a.consume(ctx, updCh, workers); done {
			a.currentBot().StopReceivingUpdates()
			a.log.Info("shutdown signal received")
			return nil
		}
		a.log.Info("update stream closed, resubscribing")
	}
}

// consume returns true when ctx is done and false when updCh was closed.
func (a *App) consume(ctx context.Context, updCh tgbotapi.UpdatesChannel, workers *errgroup.Group) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case upd, ok := <-updCh:
			if !ok {
				return false
			}
			if int64(upd.UpdateID) > a.lastUpdate.Load() {
				a.lastUpdate.Store(int64(upd.UpdateID))
			}
			workers.Go(func() error {
				a.router.HandleUpdate(ctx, upd)
				return nil
			})
		}
	}
}
