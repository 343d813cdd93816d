package resolution

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// UnresolvedPolicy decides what happens when a hostname matches neither a
// tenant nor an infrastructure label.
type UnresolvedPolicy string

const (
	// PolicyFallbackMainSite serves unresolved hostnames as the main site.
	PolicyFallbackMainSite UnresolvedPolicy = "fallback"

	// PolicyNotFound rejects unresolved hostnames with a 404.
	PolicyNotFound UnresolvedPolicy = "not_found"

	// PolicyRedirectMainSite redirects unresolved hostnames to the main
	// site URL.
	PolicyRedirectMainSite UnresolvedPolicy = "redirect"
)

// ErrorHandler renders resolution failures to the client.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	baseDomain     string
	cache          Cache
	cacheTTL       time.Duration
	lookupTimeout  time.Duration
	allowOverrides bool
	policy         UnresolvedPolicy
	mainSiteURL    string
	errorHandler   ErrorHandler
	skipPaths      []string
	dispatcher     Dispatcher
	logger         *slog.Logger
}

// Option configures the resolver and its middleware.
type Option func(*config)

func defaultResolverConfig(baseDomain string) *config {
	return &config{
		baseDomain:    baseDomain,
		cacheTTL:      DefaultCacheTTL,
		lookupTimeout: DefaultLookupTimeout,
		policy:        PolicyFallbackMainSite,
		errorHandler:  defaultErrorHandler,
		logger:        slog.Default(),
	}
}

// WithCache replaces the default in-memory cache, e.g. with NewRedisCache.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL tunes the default in-memory cache TTL. Ignored when a custom
// cache is supplied, since caches own their expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLookupTimeout bounds a single provider round-trip. On timeout the
// request degrades to the main site.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.lookupTimeout = timeout
		}
	}
}

// WithExplicitOverrides enables the explicit-override strategy (query
// parameter and header). Disabled by default: overrides are a testing/API
// facility, not something to expose to arbitrary browser traffic.
func WithExplicitOverrides(allow bool) Option {
	return func(c *config) {
		c.allowOverrides = allow
	}
}

// WithUnresolvedPolicy selects the behavior for hostnames that match no
// tenant. Invalid values keep the fallback policy.
func WithUnresolvedPolicy(policy UnresolvedPolicy) Option {
	return func(c *config) {
		switch policy {
		case PolicyFallbackMainSite, PolicyNotFound, PolicyRedirectMainSite:
			c.policy = policy
		}
	}
}

// WithMainSiteURL sets the redirect target for PolicyRedirectMainSite.
func WithMainSiteURL(url string) Option {
	return func(c *config) {
		c.mainSiteURL = url
	}
}

// WithErrorHandler sets a custom error handler for the middleware.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass resolution entirely
// (health checks, metrics, static assets).
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithDispatcher sets the schema dispatch hook invoked after a tenant or
// admin classification. Dispatch failures are logged and the request
// proceeds without the schema binding; see the middleware documentation for
// why this is a known weakness rather than a hard failure.
func WithDispatcher(d Dispatcher) Option {
	return func(c *config) {
		c.dispatcher = d
	}
}

// WithLogger sets a custom logger for the resolver and middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrOverrideNotFound), errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidSlug):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrTenantRequired), errors.Is(err, ErrNoResolutionInContext):
		http.Error(w, "Tenant context required", http.StatusNotFound)
	case errors.Is(err, ErrAdminRequired):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
