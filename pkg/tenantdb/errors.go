package tenantdb

import "errors"

var (
	// ErrInvalidSchema is returned when a schema name fails identifier
	// validation. Schema names reach SQL, so only a strict whitelist of
	// characters is accepted.
	ErrInvalidSchema = errors.New("invalid schema name")

	// ErrNoSchemaInContext is returned when a request context carries no
	// schema binding, typically because schema dispatch failed or the
	// request was not classified as a tenant or admin site.
	ErrNoSchemaInContext = errors.New("no schema binding in context")

	// ErrSchemaSwitchFailed wraps failures to point a transaction or pinned
	// connection at the requested schema.
	ErrSchemaSwitchFailed = errors.New("failed to switch schema")
)
