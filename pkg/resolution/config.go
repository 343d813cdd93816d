package resolution

import "time"

// Config carries the environment-driven resolver settings. Populate it with
// pkg/config and feed it to NewFromConfig.
type Config struct {
	BaseDomain     string           `env:"BASE_DOMAIN,required"`                       // BaseDomain is the platform's apex domain, e.g. "example.com".
	CacheTTL       time.Duration    `env:"TENANT_CACHE_TTL" envDefault:"5m"`           // CacheTTL bounds how long lookup outcomes are reused.
	LookupTimeout  time.Duration    `env:"TENANT_LOOKUP_TIMEOUT" envDefault:"3s"`      // LookupTimeout bounds a single storage round-trip.
	AllowOverrides bool             `env:"TENANT_EXPLICIT_OVERRIDES" envDefault:"false"` // AllowOverrides enables the query/header override strategy.
	Policy         UnresolvedPolicy `env:"TENANT_UNRESOLVED_POLICY" envDefault:"fallback"` // Policy for hostnames matching no tenant: fallback, not_found, redirect.
	MainSiteURL    string           `env:"MAIN_SITE_URL"`                              // MainSiteURL is the redirect target for the redirect policy.
}

// NewFromConfig creates a Resolver from environment-driven configuration.
// Extra options are applied after the config and may override it.
func NewFromConfig(provider Provider, cfg Config, opts ...Option) (*Resolver, error) {
	base := []Option{
		WithCacheTTL(cfg.CacheTTL),
		WithLookupTimeout(cfg.LookupTimeout),
		WithExplicitOverrides(cfg.AllowOverrides),
		WithUnresolvedPolicy(cfg.Policy),
		WithMainSiteURL(cfg.MainSiteURL),
	}
	return New(provider, cfg.BaseDomain, append(base, opts...)...)
}
