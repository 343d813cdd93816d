package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"

	"github.com/bookado/platform/pkg/config"
	"github.com/bookado/platform/pkg/httpserver"
	"github.com/bookado/platform/pkg/logger"
	"github.com/bookado/platform/pkg/pg"
	"github.com/bookado/platform/pkg/redis"
	"github.com/bookado/platform/pkg/requestid"
	"github.com/bookado/platform/pkg/resolution"
	"github.com/bookado/platform/pkg/tenantdb"
	"github.com/bookado/platform/pkg/tenantstore"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	CacheBackend string `env:"TENANT_CACHE_BACKEND" envDefault:"memory"` // memory | redis
	AdminSchema  string `env:"ADMIN_SCHEMA" envDefault:"admin"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("gateway exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		resCfg  resolution.Config
		pgCfg   pg.Config
		httpCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&resCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, "gateway"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			resolution.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	store, err := tenantstore.New(pool)
	if err != nil {
		return err
	}

	schemaDB, err := tenantdb.New(pool, appCfg.AdminSchema)
	if err != nil {
		return err
	}

	healthChecks := []func(context.Context) error{pg.Healthcheck(pool)}

	resolverOpts := []resolution.Option{
		resolution.WithLogger(log),
		resolution.WithDispatcher(schemaDB.Dispatcher()),
		resolution.WithSkipPaths([]string{"/health"}),
	}
	if appCfg.CacheBackend == "redis" {
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		resolverOpts = append(resolverOpts,
			resolution.WithCache(resolution.NewRedisCache(client, resCfg.CacheTTL)),
		)
		healthChecks = append(healthChecks, redis.Healthcheck(client))
	}

	resolver, err := resolution.NewFromConfig(store, resCfg, resolverOpts...)
	if err != nil {
		return fmt.Errorf("build resolver: %w", err)
	}
	defer resolver.Close() //nolint:errcheck

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestid.Middleware)
	router.Use(resolver.Middleware())

	router.Get("/health", httpserver.HealthCheckHandler(log, healthChecks...))
	router.Get("/site", siteInfoHandler)

	router.Route("/t", func(r chi.Router) {
		r.Use(resolution.RequireTenant(nil))
		r.Get("/profile", tenantProfileHandler(schemaDB))
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// siteInfoHandler exposes the request's resolution result, mostly useful
// for debugging DNS and tenant setup.
func siteInfoHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := resolution.FromContext(r.Context())
	if !ok {
		http.Error(w, "unresolved request", http.StatusInternalServerError)
		return
	}

	payload := map[string]any{
		"hostname":         res.Hostname,
		"class":            res.Class.String(),
		"method":           string(res.Method),
		"is_main_site":     res.IsMainSite(),
		"is_admin_site":    res.IsAdminSite(),
		"is_tenant_site":   res.IsTenantSite(),
		"is_custom_domain": res.IsCustomDomain(),
	}
	if slug := res.Slug(); slug != "" {
		payload["tenant"] = slug
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// tenantProfileHandler reads the tenant profile through the dispatched
// schema, demonstrating the context-bound schema flow end to end.
func tenantProfileHandler(db *tenantdb.SchemaDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := resolution.MustTenant(r.Context())

		var schema string
		err := db.WithRequestSchema(r.Context(), func(tx pgx.Tx) error {
			return tx.QueryRow(r.Context(), `SELECT current_schema()`).Scan(&schema)
		})
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     t.ID,
			"slug":   t.Slug,
			"name":   t.Name,
			"schema": schema,
		})
	}
}
