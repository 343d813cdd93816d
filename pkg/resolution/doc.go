// Package resolution maps inbound requests to a site classification before
// any business logic runs: the platform main site, the admin site, or one of
// the tenant sites.
//
// # Architecture
//
// Resolution runs an ordered chain of strategies; the first definitive
// outcome wins:
//
//  1. Explicit override — a caller-supplied slug via the "tenant" query
//     parameter or X-Tenant-Slug header (feature-flagged). An override that
//     names an unknown tenant fails the request outright; it never falls
//     through to the host-based strategies.
//  2. Custom domain — exact hostname match against tenants' custom domain
//     bindings. Wins over subdomain matching because the custom domain is
//     the more specific binding.
//  3. Subdomain — the parsed subdomain label (pkg/hostname) looked up
//     against tenant slugs. Reserved infrastructure labels never resolve to
//     a tenant; the "admin" label classifies as the admin site without any
//     storage lookup.
//  4. Fallback — everything else is the main site.
//
// Lookups consult a TTL cache before the Provider. Both found and not-found
// outcomes are cached so repeated requests for nonexistent tenants do not
// hammer storage. The cache is best-effort: concurrent first-time misses may
// each perform the lookup, which is benign because lookups are idempotent.
//
// # Usage
//
//	provider := tenantstore.New(pool) // implements resolution.Provider
//	resolver, err := resolution.New(provider, "example.com",
//		resolution.WithCacheTTL(5*time.Minute),
//		resolution.WithSkipPaths([]string{"/health"}),
//	)
//	if err != nil { ... }
//
//	router.Use(resolver.Middleware())
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		res, _ := resolution.FromContext(r.Context())
//		if res.IsTenantSite() {
//			t := resolution.MustTenant(r.Context())
//			_ = t
//		}
//	}
//
// # Failure policy
//
// Resolution-layer errors never propagate into route handlers. Storage
// failures degrade the request to the main site (fail-open for traffic
// continuity) and are logged with the hostname and attempted slug. Routes
// that require a tenant must be mounted behind RequireTenant, which rejects
// main-site context instead of proceeding with a nil tenant.
//
// # Invalidation
//
// Cache entries can go stale for up to one TTL window after a tenant record
// changes. Admin flows should call Resolver.Invalidate (or Cache.Invalidate
// directly) after approving, editing, or deleting a tenant.
package resolution
