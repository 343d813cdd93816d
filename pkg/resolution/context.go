package resolution

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithResolution attaches a terminal resolution result to the context. The
// classification is immutable for the lifetime of the request: downstream
// code reads it, never rewrites it.
func WithResolution(ctx context.Context, res Result) context.Context {
	return context.WithValue(ctx, contextKey{}, res)
}

// FromContext retrieves the resolution result from the context.
func FromContext(ctx context.Context) (Result, bool) {
	res, ok := ctx.Value(contextKey{}).(Result)
	return res, ok
}

// TenantFromContext retrieves the resolved tenant, if the request was
// classified as a tenant site.
func TenantFromContext(ctx context.Context) (*Tenant, bool) {
	res, ok := FromContext(ctx)
	if !ok || !res.IsTenantSite() || res.Tenant == nil {
		return nil, false
	}
	return res.Tenant, true
}

// TenantIDFromContext retrieves just the tenant ID from the context.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := TenantFromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustTenant retrieves the resolved tenant and panics if there is none.
// Use only in handlers mounted behind RequireTenant.
func MustTenant(ctx context.Context) *Tenant {
	t, ok := TenantFromContext(ctx)
	if !ok {
		panic("resolution: no tenant in context")
	}
	return t
}

// LoggerExtractor returns a context extractor for the logger that enriches
// log records with the site classification and, when present, tenant slug.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		res, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		attrs := []any{
			slog.String("class", res.Class.String()),
			slog.String("method", string(res.Method)),
		}
		if slug := res.Slug(); slug != "" {
			attrs = append(attrs, slog.String("tenant", slug))
		}
		return slog.Group("site", attrs...), true
	}
}
