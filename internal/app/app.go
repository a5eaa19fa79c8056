// Package app provides the main application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - API mode: HTTP API for text and voice messages
//   - Bot mode: Telegram bot for citizens
//   - All mode: both transports in one process
//
// Every mode also runs the conversation log writer and the health server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lueurxax/seva-desk/internal/api"
	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/core/llm"
	"github.com/lueurxax/seva-desk/internal/platform/config"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
	"github.com/lueurxax/seva-desk/internal/process/assistant"
	"github.com/lueurxax/seva-desk/internal/session"
	"github.com/lueurxax/seva-desk/internal/telegrambot"
	db "github.com/lueurxax/seva-desk/internal/storage"
)

const (
	voiceQuotaWindow  = time.Hour
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second

	errBotInit = "bot initialization failed: %w"
)

// ErrTelegramNotConfigured is returned by bot mode without a bot token.
var ErrTelegramNotConfigured = errors.New("TELEGRAM_BOT_TOKEN is not set")

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	redis    *redis.Client
	logger   *zerolog.Logger
}

// runtime is the pipeline shared by the transports of one process.
type runtime struct {
	assistant   *assistant.Assistant
	logs        *assistant.LogWriter
	transcriber llm.Transcriber
	voiceQuota  *session.QuotaLimiter
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, redisClient *redis.Client, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		redis:    redisClient,
		logger:   logger,
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	checks := map[string]observability.Pinger{
		"postgres": a.database,
		"redis": observability.PingFunc(func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}),
	}

	return observability.NewServer(checks, a.cfg.HealthPort, a.logger).Start(ctx)
}

func (a *App) newRuntime() (*runtime, error) {
	llmCfg := a.cfg.LLMCfg()

	augmenter, err := llm.NewOpenAI(llmCfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("augmentation client init: %w", err)
	}

	transcriber := llm.DisabledTranscriber()
	if llmCfg.Enabled {
		transcriber = llm.NewWhisper(llmCfg, a.logger)
	} else {
		a.logger.Warn().Msg("AI augmentation disabled, using local rules only")
	}

	logs := assistant.NewLogWriter(a.database, a.cfg.LogQueueSize, a.cfg.LogFlushInterval, a.logger)

	loc := a.cfg.LocationCfg()

	turns, err := assistant.New(assistant.Config{
		AITimeout:       llmCfg.CallTimeout,
		DefaultLocation: domain.Location{Address: loc.Address, Lat: loc.Lat, Lng: loc.Lng},
	}, assistant.Deps{
		AI:       augmenter,
		Requests: a.database,
		Users:    a.database,
		Logs:     logs,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("assistant init: %w", err)
	}

	return &runtime{
		assistant:   turns,
		logs:        logs,
		transcriber: transcriber,
		voiceQuota:  session.NewQuotaLimiter(a.redis, a.cfg.VoiceRateLimitPerHour, voiceQuotaWindow),
	}, nil
}

// RunAPI serves the HTTP API until ctx is cancelled.
func (a *App) RunAPI(ctx context.Context) error {
	return a.run(ctx, true, false)
}

// RunBot runs the Telegram bot until ctx is cancelled.
func (a *App) RunBot(ctx context.Context) error {
	return a.run(ctx, false, true)
}

// RunAll runs the HTTP API and the Telegram bot together.
func (a *App) RunAll(ctx context.Context) error {
	return a.run(ctx, true, a.cfg.TelegramBotToken != "")
}

func (a *App) run(ctx context.Context, withAPI, withBot bool) error {
	rt, err := a.newRuntime()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return rt.logs.Run(gctx) })

	if withAPI {
		g.Go(func() error { return a.serveAPI(gctx, rt) })
	}

	if withBot {
		g.Go(func() error { return a.runBot(gctx, rt) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return ctx.Err()
}

func (a *App) serveAPI(ctx context.Context, rt *runtime) error {
	handler, err := api.NewHandler(api.Options{
		Turns:          rt.assistant,
		Transcriber:    rt.transcriber,
		VoiceQuota:     rt.voiceQuota,
		Requests:       a.database,
		MaxUploadBytes: a.cfg.MaxVoiceUploadBytes,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("api handler init: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:errcheck,contextcheck // shutdown on cancel is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info().Int("port", a.cfg.HTTPPort).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server error: %w", err)
	}

	return ctx.Err()
}

func (a *App) runBot(ctx context.Context, rt *runtime) error {
	if a.cfg.TelegramBotToken == "" {
		return fmt.Errorf(errBotInit, ErrTelegramNotConfigured)
	}

	botAPI, err := telegrambot.NewAPI(a.cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf(errBotInit, err)
	}

	redisCfg := a.cfg.RedisCfg()

	bot, err := telegrambot.New(telegrambot.Deps{
		API:         botAPI,
		Turns:       rt.assistant,
		Contexts:    session.NewRedisStore(a.redis, redisCfg.SessionTTL, a.logger),
		Transcriber: rt.transcriber,
		VoiceQuota:  rt.voiceQuota,
	}, a.logger)
	if err != nil {
		return fmt.Errorf(errBotInit, err)
	}

	return bot.Run(ctx)
}
