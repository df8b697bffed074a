package app

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/gradlink/clientcore/api"
	"github.com/gradlink/clientcore/config"
	"github.com/gradlink/clientcore/guard"
	"github.com/gradlink/clientcore/identity"
	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/observability"
	"github.com/gradlink/clientcore/session"
	"github.com/gradlink/clientcore/storage"
	"github.com/gradlink/clientcore/version"
)

// Hook is a lifecycle callback run during startup.
type Hook func(ctx context.Context) error

// App wires the GradLink client components together and manages their
// lifecycle.
type App struct {
	Cfg      *config.Config
	Logger   *logger.Logger
	API      *api.Client
	Session  *session.Store
	Identity *identity.Controller
	Guard    *guard.Guard

	bootstrapper   *session.Bootstrapper
	tracerProvider *sdktrace.TracerProvider
	onReady        []Hook
	started        bool
}

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger  *logger.Logger
	durable storage.Store
	client  *api.Client
}

// WithLogger sets a custom logger. If not set, the global logger is
// initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithDurableStore overrides the durable credential store. Used by tests to
// avoid touching the real filesystem.
func WithDurableStore(s storage.Store) Option {
	return func(o *appOptions) { o.durable = s }
}

// WithAPIClient overrides the API client built from config.
func WithAPIClient(c *api.Client) Option {
	return func(o *appOptions) { o.client = c }
}

// New builds the client from a validated configuration. Nothing is read from
// durable storage and no network traffic occurs until Start.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: config validation: %w", err)
	}

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		logger.Init(cfg.Logging)
		log = logger.GetGlobalLogger()
	}

	durable := o.durable
	if durable == nil {
		provider := storage.ProviderFile
		if cfg.Storage.EncryptionKey != "" {
			provider = storage.ProviderEncryptedFile
		}
		var err error
		durable, err = storage.New(storage.Config{
			Provider:      provider,
			Path:          cfg.Storage.CredentialsPath(),
			EncryptionKey: cfg.Storage.EncryptionKey,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("app: durable storage: %w", err)
		}
	}
	ephemeral := storage.NewMemoryStore()

	store := session.NewStore(durable, ephemeral, log)

	client := o.client
	if client == nil {
		var err error
		client, err = api.New(api.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Auth:    api.SourceAuth(store.Token),
			TLS: &api.TLSConfig{
				SkipVerify: cfg.API.TLSSkipVerify,
				CAFile:     cfg.API.TLSCAFile,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("app: api client: %w", err)
		}
	}

	a := &App{
		Cfg:     cfg,
		Logger:  log,
		API:     client,
		Session: store,
		Identity: identity.NewController(store, client, log,
			identity.WithStaleThreshold(cfg.Identity.StaleThreshold)),
		Guard:        guard.New(store, log),
		bootstrapper: session.NewBootstrapper(store, durable, log),
	}
	return a, nil
}

// OnReady registers a hook that runs after the session is bootstrapped and
// any persisted identity has been hydrated.
func (a *App) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// Start initializes tracing, restores the persisted session, and hydrates
// the user record from the server when a token survived the restart.
// Transient hydration failures are logged, not fatal: a stale cached
// identity is preferable to refusing to start.
func (a *App) Start(ctx context.Context) error {
	if a.started {
		return nil
	}
	start := time.Now()

	if a.Cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    a.Cfg.App.Name,
			ServiceVersion: version.Version,
			Environment:    a.Cfg.App.Environment,
			Endpoint:       a.Cfg.Tracing.Endpoint,
			Insecure:       a.Cfg.Tracing.Insecure,
			SampleRate:     a.Cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("app: tracing: %w", err)
		}
		a.tracerProvider = tp
	}

	bctx, span := observability.StartSpan(ctx, observability.SpanBootstrap)
	err := a.bootstrapper.Run()
	if err != nil {
		observability.SetSpanError(bctx, err)
	}
	span.End()
	if err != nil {
		return fmt.Errorf("app: session bootstrap: %w", err)
	}

	if err := a.Identity.EnsureFresh(ctx); err != nil {
		a.Logger.Warn("identity hydration failed, continuing with cached session",
			logger.ErrorFields("start", err))
	}

	for i, h := range a.onReady {
		if err := h(ctx); err != nil {
			return fmt.Errorf("app: onReady hook %d: %w", i, err)
		}
	}

	a.started = true
	a.Logger.Info("client started", logger.Fields(
		"authenticated", a.Session.IsAuthenticated(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

// Shutdown flushes and releases resources. Safe to call once after Start.
func (a *App) Shutdown(ctx context.Context) error {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("app: tracer shutdown: %w", err)
		}
	}
	a.Logger.Info("client shut down")
	return nil
}
