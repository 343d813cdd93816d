package resolution

import "errors"

var (
	// ErrTenantNotFound is returned when no approved tenant matches a slug
	// or custom domain.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrOverrideNotFound is returned when a caller-supplied explicit
	// override names a tenant that does not resolve. The override is either
	// honored or rejected; it never falls through to another strategy.
	ErrOverrideNotFound = errors.New("explicit tenant override not found")

	// ErrInvalidSlug is returned when a tenant identifier is malformed.
	ErrInvalidSlug = errors.New("invalid tenant slug")

	// ErrLookupFailed wraps storage errors during resolution. It never
	// reaches route handlers; the middleware degrades it to a main-site
	// classification.
	ErrLookupFailed = errors.New("tenant lookup failed")

	// ErrNoResolutionInContext is returned when the request context carries
	// no resolution result.
	ErrNoResolutionInContext = errors.New("no resolution result in context")

	// ErrTenantRequired is returned by guards protecting tenant-only routes.
	ErrTenantRequired = errors.New("tenant context required")

	// ErrAdminRequired is returned by guards protecting admin-only routes.
	ErrAdminRequired = errors.New("admin context required")
)
