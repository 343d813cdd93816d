package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/bookado/platform/pkg/hostname"
)

const (
	// OverrideQueryParam carries an explicit tenant override in the query
	// string. Intended for API clients and testing, not browser traffic.
	OverrideQueryParam = "tenant"

	// OverrideHeader carries an explicit tenant override in a header.
	OverrideHeader = "X-Tenant-Slug"

	// DefaultLookupTimeout bounds a single provider round-trip.
	DefaultLookupTimeout = 3 * time.Second

	maxSlugLength = 63
)

// slugPattern keeps tenant slugs DNS-safe: lowercase alphanumeric start,
// hyphens allowed inside.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Resolver maps request hostnames (and optional explicit overrides) to a
// site classification. Strategies run in strict priority order: explicit
// override, custom domain, subdomain, main-site fallback. The first strategy
// to produce a definitive result wins; an explicit override that fails never
// falls through to the host-based strategies.
type Resolver struct {
	provider Provider
	cfg      *config
}

// New creates a Resolver for the given base domain. The provider is
// consulted on cache misses; pass options to replace the default in-memory
// cache, tune timeouts, or enable explicit overrides.
func New(provider Provider, baseDomain string, opts ...Option) (*Resolver, error) {
	if provider == nil {
		return nil, errors.New("resolution: provider is required")
	}
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))
	if baseDomain == "" {
		return nil, errors.New("resolution: base domain is required")
	}

	cfg := defaultResolverConfig(baseDomain)
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cache == nil {
		cfg.cache = NewMemoryCache(cfg.cacheTTL)
	}
	return &Resolver{provider: provider, cfg: cfg}, nil
}

// Resolve classifies a single request. The returned result is terminal for
// every path except an unknown subdomain, which stays Unresolved so the
// middleware can apply the configured policy. A non-nil error is returned
// only for rejected explicit overrides; storage failures degrade to the
// main site and are logged, never surfaced to handlers.
func (rs *Resolver) Resolve(ctx context.Context, req *http.Request) (Result, error) {
	host := req.Host

	if rs.cfg.allowOverrides {
		if slug := overrideSlug(req); slug != "" {
			return rs.resolveOverride(ctx, host, slug)
		}
	}

	if res, ok := rs.resolveCustomDomain(ctx, host); ok {
		return res, nil
	}

	return rs.resolveSubdomain(ctx, host), nil
}

// Invalidate drops cached lookup outcomes for a tenant. Admin flows call
// this after approving, editing, or deleting a tenant record so routing does
// not serve stale data for a full TTL window.
func (rs *Resolver) Invalidate(ctx context.Context, t *Tenant) {
	if t == nil {
		return
	}
	if t.Slug != "" {
		rs.cfg.cache.Invalidate(ctx, slugKey(t.Slug))
	}
	if t.CustomDomain != "" {
		rs.cfg.cache.Invalidate(ctx, domainKey(t.CustomDomain))
	}
}

// Close releases the resolver's cache resources.
func (rs *Resolver) Close() error {
	return rs.cfg.cache.Close()
}

// resolveOverride honors or rejects a caller-supplied slug. A slug that does
// not name an approved tenant is a hard failure: the override is a trust
// boundary and must never be silently replaced with unrelated tenant data.
func (rs *Resolver) resolveOverride(ctx context.Context, host, slug string) (Result, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !validSlug(slug) {
		return Unresolved(host), fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	t, err := rs.lookupBySlug(ctx, slug)
	if err != nil {
		// Fail-open on infrastructure errors, same as the host-based
		// strategies: traffic continuity beats override fidelity here.
		rs.logDegradation(ctx, host, slug, err)
		return MainSite(host), nil
	}
	if t == nil {
		return Unresolved(host), fmt.Errorf("%w: %q", ErrOverrideNotFound, slug)
	}
	return TenantSite(host, t, MethodExplicit), nil
}

// resolveCustomDomain matches the exact hostname against tenants' custom
// domain bindings. It declines (ok=false) when the host cannot carry a
// custom domain or no tenant claims it, letting the subdomain strategy run.
func (rs *Resolver) resolveCustomDomain(ctx context.Context, rawHost string) (Result, bool) {
	host := normalizeHost(rawHost)
	if !rs.customDomainEligible(host) {
		return Result{}, false
	}

	t, err := rs.lookupByCustomDomain(ctx, host)
	if err != nil {
		rs.logDegradation(ctx, rawHost, "", err)
		return MainSite(rawHost), true
	}
	if t == nil {
		return Result{}, false
	}
	return TenantSite(rawHost, t, MethodCustomDomain), true
}

// customDomainEligible excludes hosts that can never be custom domains: the
// base domain itself, local development hosts, and the platform admin host.
// The admin host guard is deliberate: admin.<baseDomain> always classifies
// as the admin site even if a tenant somehow registered it as a domain.
func (rs *Resolver) customDomainEligible(host string) bool {
	switch {
	case host == "":
		return false
	case host == rs.cfg.baseDomain:
		return false
	case host == "localhost" || strings.HasSuffix(host, ".localhost"):
		return false
	case net.ParseIP(host) != nil:
		return false
	case host == hostname.AdminLabel+"."+rs.cfg.baseDomain:
		return false
	}
	return true
}

// resolveSubdomain classifies by the parsed subdomain label. The admin label
// short-circuits to the admin site without any storage lookup; other
// reserved labels fall through to the main site.
func (rs *Resolver) resolveSubdomain(ctx context.Context, rawHost string) Result {
	label, ok := hostname.Parse(rawHost, rs.cfg.baseDomain)
	if !ok {
		return MainSite(rawHost)
	}
	if hostname.IsAdminLabel(label) {
		return AdminSite(rawHost)
	}
	if hostname.IsReserved(label) || !validSlug(label) {
		return MainSite(rawHost)
	}

	t, err := rs.lookupBySlug(ctx, label)
	if err != nil {
		rs.logDegradation(ctx, rawHost, label, err)
		return MainSite(rawHost)
	}
	if t == nil {
		return Unresolved(rawHost)
	}
	return TenantSite(rawHost, t, MethodSubdomain)
}

// lookupBySlug consults the cache and falls back to the provider, recording
// positive and negative outcomes. A nil tenant with nil error means "not
// found" (possibly served from a negative cache entry).
func (rs *Resolver) lookupBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return rs.lookup(ctx, slugKey(slug), func(ctx context.Context) (*Tenant, error) {
		return rs.provider.FindBySlug(ctx, slug)
	})
}

func (rs *Resolver) lookupByCustomDomain(ctx context.Context, domain string) (*Tenant, error) {
	return rs.lookup(ctx, domainKey(domain), func(ctx context.Context) (*Tenant, error) {
		return rs.provider.FindByCustomDomain(ctx, domain)
	})
}

func (rs *Resolver) lookup(ctx context.Context, key string, fetch func(context.Context) (*Tenant, error)) (*Tenant, error) {
	if entry, ok := rs.cfg.cache.Get(ctx, key); ok {
		return entry.Tenant, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, rs.cfg.lookupTimeout)
	defer cancel()

	t, err := fetch(lookupCtx)
	switch {
	case errors.Is(err, ErrTenantNotFound):
		rs.cfg.cache.Set(ctx, key, Entry{})
		return nil, nil
	case err != nil:
		return nil, errors.Join(ErrLookupFailed, err)
	case !t.Approved():
		// Tie-break: any non-approved lifecycle state is identical to
		// "not found" from the resolver's perspective.
		rs.cfg.cache.Set(ctx, key, Entry{})
		return nil, nil
	}

	rs.cfg.cache.Set(ctx, key, Entry{Tenant: t})
	return t, nil
}

func (rs *Resolver) logDegradation(ctx context.Context, host, slug string, err error) {
	rs.cfg.logger.ErrorContext(ctx, "tenant lookup failed, degrading to main site",
		slog.String("hostname", host),
		slog.String("slug", slug),
		slog.Any("error", err),
	)
}

func overrideSlug(req *http.Request) string {
	if slug := req.URL.Query().Get(OverrideQueryParam); slug != "" {
		return slug
	}
	return req.Header.Get(OverrideHeader)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func validSlug(slug string) bool {
	return slug != "" && len(slug) <= maxSlugLength && slugPattern.MatchString(slug)
}

func slugKey(slug string) string     { return "slug:" + slug }
func domainKey(domain string) string { return "domain:" + domain }
