package resolution

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Dispatcher directs subsequent storage operations at the resolved logical
// schema once a tenant or admin classification is final. Implementations
// typically derive a new request context carrying the schema binding; they
// must not mutate session state on pooled connections (see pkg/tenantdb).
type Dispatcher interface {
	Dispatch(ctx context.Context, res Result) (context.Context, error)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, res Result) (context.Context, error)

func (f DispatcherFunc) Dispatch(ctx context.Context, res Result) (context.Context, error) {
	return f(ctx, res)
}

// Middleware resolves every request to exactly one terminal classification
// (main site, admin site, tenant site) and attaches it to the request
// context before any downstream handler runs.
//
// Resolution-layer errors never propagate to handlers: storage failures
// degrade to the main site, unresolved hostnames follow the configured
// policy, and only rejected explicit overrides produce an error response.
func (rs *Resolver) Middleware() func(http.Handler) http.Handler {
	cfg := rs.cfg

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			res, err := rs.Resolve(r.Context(), r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if !res.Terminal() {
				switch cfg.policy {
				case PolicyNotFound:
					cfg.errorHandler(w, r, ErrTenantNotFound)
					return
				case PolicyRedirectMainSite:
					if cfg.mainSiteURL != "" {
						http.Redirect(w, r, cfg.mainSiteURL, http.StatusFound)
						return
					}
					res = MainSite(res.Hostname)
				default:
					res = MainSite(res.Hostname)
				}
			}

			ctx := WithResolution(r.Context(), res)

			if cfg.dispatcher != nil && (res.IsTenantSite() || res.IsAdminSite()) {
				dispatched, err := cfg.dispatcher.Dispatch(ctx, res)
				if err != nil {
					// Known weakness: the request proceeds without the
					// schema binding. Queries relying on the dispatch
					// must handle the missing binding themselves.
					cfg.logger.ErrorContext(ctx, "schema dispatch failed",
						slog.String("hostname", res.Hostname),
						slog.String("schema", res.SchemaName()),
						slog.Any("error", err),
					)
				} else {
					ctx = dispatched
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant protects routes that only make sense on a tenant site.
// Requests classified as main or admin site are rejected instead of
// proceeding with null-tenant assumptions.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := TenantFromContext(r.Context()); !ok {
				errorHandler(w, r, ErrTenantRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin protects routes that belong to the platform admin site.
func RequireAdmin(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := FromContext(r.Context())
			if !ok || !res.IsAdminSite() {
				errorHandler(w, r, ErrAdminRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
