// Command server runs the platform-config service: feature toggles with
// course overrides, the admin surface, language listings, and bookmarks.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"campus/internal/bookmarks"
	bookmarkshandler "campus/internal/bookmarks/handler"
	bookmarkstore "campus/internal/bookmarks/store"
	"campus/internal/courseexperience"
	jwttoken "campus/internal/jwt_token"
	"campus/internal/langpref"
	"campus/internal/platform/config"
	"campus/internal/platform/httpserver"
	"campus/internal/platform/kafka/producer"
	"campus/internal/platform/logger"
	platformmetrics "campus/internal/platform/metrics"
	"campus/internal/platform/migrate"
	"campus/internal/platform/postgres"
	platformredis "campus/internal/platform/redis"
	"campus/internal/ratelimit"
	"campus/internal/siteconfig"
	"campus/internal/siteconfig/store/darklang"
	ratelimitstore "campus/internal/siteconfig/store/ratelimit"
	httptransport "campus/internal/transport/http"
	"campus/internal/waffle/admin"
	wafflehandler "campus/internal/waffle/handler"
	wafflemetrics "campus/internal/waffle/metrics"
	"campus/internal/waffle/store/global"
	"campus/internal/waffle/store/override"
	audit "campus/pkg/platform/audit"
	auditmem "campus/pkg/platform/audit/store/memory"
	auditpg "campus/pkg/platform/audit/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: PostgreSQL when configured, in-memory otherwise (dev mode).
	var (
		db            *sql.DB
		globalStore   global.Store
		overrideStore override.Store
		rateLimits    ratelimitstore.Store
		darkLang      darklang.Store
		bookmarkStore bookmarkstore.Store
		auditStore    audit.Store
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrate.Up(db); err != nil {
			return err
		}

		globalStore = global.NewPostgres(db)
		overrideStore = override.NewPostgres(db)
		rateLimits = ratelimitstore.NewPostgres(db)
		darkLang = darklang.NewPostgres(db)
		bookmarkStore = bookmarkstore.NewPostgres(db)
		auditStore = auditpg.NewPostgresStore(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		globalStore = global.NewInMemory()
		overrideStore = override.NewInMemory()
		rateLimits = ratelimitstore.NewInMemory()
		darkLang = darklang.NewInMemory()
		bookmarkStore = bookmarkstore.NewInMemory()
		auditStore = auditmem.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		globalStore = global.NewCached(globalStore, redisClient.Client, global.DefaultCacheTTL, log)
	}

	// Audit pipeline: persisted always, fanned out to Kafka when configured.
	publisherOpts := []audit.PublisherOption{
		audit.WithLogger(log),
		audit.WithAsyncBuffer(cfg.AuditBuffer),
	}
	kafkaProducer, err := producer.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
	if err != nil {
		return err
	}
	if kafkaProducer != nil {
		defer kafkaProducer.Close()
		if err := kafkaProducer.EnsureTopic(ctx, 3, 1); err != nil {
			return err
		}
		publisherOpts = append(publisherOpts, audit.WithSink(kafkaProducer))
	}
	publisher := audit.NewPublisher(auditStore, publisherOpts...)
	defer publisher.Close()

	siteConfig, err := siteconfig.New(rateLimits, darkLang,
		siteconfig.WithLogger(log),
		siteconfig.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}
	if err := siteConfig.EnsureDefaults(ctx); err != nil {
		return err
	}

	waffleMetrics := wafflemetrics.New()
	adminService, err := admin.New(overrideStore, globalStore,
		admin.WithLogger(log),
		admin.WithAuditPublisher(publisher),
		admin.WithMetrics(waffleMetrics),
	)
	if err != nil {
		return err
	}

	courseFlags, err := courseexperience.New(globalStore, overrideStore)
	if err != nil {
		return err
	}

	catalog, err := langpref.LoadCatalog(cfg.LanguagesFile)
	if err != nil {
		return err
	}
	languages, err := langpref.New(catalog, siteConfig, cfg.DefaultLanguage, cfg.Selector,
		langpref.WithLogger(log))
	if err != nil {
		return err
	}

	bookmarksService, err := bookmarks.New(bookmarkStore, bookmarks.WithLogger(log))
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	rateLimiter := ratelimit.NewMiddleware(
		ratelimit.NewLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		siteConfig, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:           log,
		Metrics:          platformmetrics.New(),
		RateLimit:        rateLimiter,
		TokenValidator:   jwttoken.NewJWTServiceAdapter(jwtService),
		WaffleAdmin:      wafflehandler.New(adminService, publisher, log),
		Bookmarks:        bookmarkshandler.New(bookmarksService),
		Languages:        langpref.NewHandler(languages),
		CourseExperience: courseFlags,
		HealthCheck: func(r *http.Request) error {
			if db != nil {
				if err := db.PingContext(r.Context()); err != nil {
					return err
				}
			}
			if redisClient != nil {
				return redisClient.Health(r.Context())
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting campus config service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return httpserver.Shutdown(srv)
	})

	return g.Wait()
}
