package tenantdb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bookado/platform/pkg/resolution"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithSchemaContext binds a schema name into the context. Done by the
// Dispatcher after classification; query helpers read it back out.
func WithSchemaContext(ctx context.Context, schema string) context.Context {
	return context.WithValue(ctx, contextKey{}, schema)
}

// SchemaFromContext retrieves the schema binding from the context.
func SchemaFromContext(ctx context.Context) (string, bool) {
	schema, ok := ctx.Value(contextKey{}).(string)
	return schema, ok
}

// Dispatcher returns the resolution middleware hook. Tenant-site requests
// are bound to the tenant's schema, admin-site requests to the admin schema.
// Binding fails when the tenant record carries a malformed schema name; the
// middleware logs that and lets the request proceed unbound.
func (db *SchemaDB) Dispatcher() resolution.Dispatcher {
	return resolution.DispatcherFunc(func(ctx context.Context, res resolution.Result) (context.Context, error) {
		schema := db.adminSchema
		if res.IsTenantSite() {
			schema = res.SchemaName()
		}
		if !ValidSchemaName(schema) {
			return ctx, fmt.Errorf("%w: %q", ErrInvalidSchema, schema)
		}
		return WithSchemaContext(ctx, schema), nil
	})
}

// WithRequestSchema runs fn inside a transaction scoped to the schema bound
// to the request context. It is the bridge handlers use after the
// middleware has dispatched.
func (db *SchemaDB) WithRequestSchema(ctx context.Context, fn func(pgx.Tx) error) error {
	schema, ok := SchemaFromContext(ctx)
	if !ok {
		return ErrNoSchemaInContext
	}
	return db.WithSchema(ctx, schema, fn)
}
