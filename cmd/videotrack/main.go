package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/videotrack/internal/handlers"
	"github.com/example/videotrack/internal/platform/analytics"
	"github.com/example/videotrack/internal/platform/auth"
	"github.com/example/videotrack/internal/platform/config"
	"github.com/example/videotrack/internal/platform/db"
	"github.com/example/videotrack/internal/platform/httpserver"
	"github.com/example/videotrack/internal/platform/logging"
	"github.com/example/videotrack/internal/platform/natsconn"
	"github.com/example/videotrack/internal/platform/run"
	"github.com/example/videotrack/internal/platform/signing"
	"github.com/example/videotrack/internal/progress"
	"github.com/example/videotrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	stores, closeStores := initStores(cfg, log)
	if closeStores != nil {
		defer closeStores()
	}

	publisher, closeNATS := initAnalytics(log)
	if closeNATS != nil {
		defer closeNATS()
	}

	verifier := auth.JWTVerifier{Secret: []byte(cfg.Auth.JWTSecret)}
	tokens := auth.TokenService{Secret: []byte(cfg.Auth.JWTSecret), AccessTokenTTL: cfg.Auth.AccessTokenTTL}

	var signer *signing.Signer
	if cfg.PlaybackSecret != "" {
		signer = signing.New(cfg.PlaybackSecret)
	} else {
		log.Warn("PLAYBACK_SIGNING_SECRET not set, playback urls are unsigned")
	}

	var policy progress.Policy
	if cfg.Progress.Monotone {
		policy = progress.Monotone()
	}
	engine := &progress.Engine{Catalog: stores.catalog, Progress: stores.progress, Policy: policy}
	agg := &progress.Aggregator{Catalog: stores.catalog, Progress: stores.progress}

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	r.Post("/v1/auth/register", handlers.Register(stores.users, tokens, publisher))
	r.Post("/v1/auth/login", handlers.Login(stores.users, tokens, publisher))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Get("/v1/videos", handlers.ListVideos(stores.catalog, stores.progress, agg))
		r.Get("/v1/videos/{video_id}", handlers.WatchVideo(stores.catalog, stores.progress, signer, publisher))
		r.Post("/v1/videos/{video_id}/progress", handlers.UpdateProgress(engine, publisher))
		r.Get("/v1/stats", handlers.GetStats(agg))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

type appStores struct {
	users    store.UserStore
	catalog  store.CatalogStore
	progress store.ProgressStore
}

// initStores selects the storage backend. Production requires a working
// Postgres connection and terminates the process otherwise.
func initStores(cfg config.AppConfig, log *zap.Logger) (appStores, func()) {
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memoryStores(log), nil
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if cfg.Production() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memoryStores(log), nil
	}

	if err := store.EnsureSchema(ctx, pool); err != nil {
		log.Error("schema bootstrap failed", zap.Error(err))
		_ = log.Sync()
		run.Exit(1)
	}
	if err := store.SeedCatalog(ctx, pool); err != nil {
		log.Error("catalog seed failed", zap.Error(err))
		_ = log.Sync()
		run.Exit(1)
	}

	log.Info("stores: postgres")
	return appStores{
		users:    store.NewPostgresUserStore(pool),
		catalog:  store.NewPostgresCatalogStore(pool),
		progress: store.NewPostgresProgressStore(pool),
	}, pool.Close
}

// memoryStores builds the development backend: sample catalog plus a
// demo account.
func memoryStores(log *zap.Logger) appStores {
	users := store.NewInMemoryUserStore()
	if hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost); err == nil {
		if _, err := users.CreateUser(context.Background(), "demo@test.com", string(hash)); err == nil {
			log.Info("seeded demo user", zap.String("email", "demo@test.com"))
		}
	}
	return appStores{
		users:    users,
		catalog:  store.NewInMemoryCatalogStore(store.SampleVideos()),
		progress: store.NewInMemoryProgressStore(),
	}
}

// initAnalytics connects to NATS if available; events are best-effort.
func initAnalytics(log *zap.Logger) (*analytics.Publisher, func()) {
	nc, err := natsconn.Connect(natsconn.Options{})
	if err != nil {
		log.Warn("nats unavailable, analytics disabled", zap.Error(err))
		return nil, nil
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("jetstream unavailable, analytics disabled", zap.Error(err))
		nc.Close()
		return nil, nil
	}
	return analytics.New(js, log), nc.Close
}
