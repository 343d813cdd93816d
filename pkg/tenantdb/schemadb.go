package tenantdb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaPattern whitelists PostgreSQL identifiers safe to place in a
// search_path: lowercase alphanumeric and underscore, 63 bytes max.
var schemaPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// ValidSchemaName reports whether name is a safe schema identifier.
func ValidSchemaName(name string) bool {
	return schemaPattern.MatchString(name)
}

// txBeginner exposes the minimal pool behavior needed by SchemaDB.
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// SchemaDB wraps a pgx pool to execute queries within a tenant-specific
// search_path. All schema switching is transaction-scoped or pinned to a
// single connection; the pool itself never carries tenant state.
type SchemaDB struct {
	pool        *pgxpool.Pool
	beginner    txBeginner
	adminSchema string
}

// New creates a SchemaDB. adminSchema is the shared platform schema that
// backs admin-site requests and is appended to every tenant search_path so
// cross-tenant reference tables stay reachable.
func New(pool *pgxpool.Pool, adminSchema string) (*SchemaDB, error) {
	if pool == nil {
		return nil, errors.New("tenantdb: pool is required")
	}
	adminSchema = strings.TrimSpace(adminSchema)
	if !ValidSchemaName(adminSchema) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchema, adminSchema)
	}
	return &SchemaDB{pool: pool, beginner: pool, adminSchema: adminSchema}, nil
}

// AdminSchema returns the shared platform schema name.
func (db *SchemaDB) AdminSchema() string { return db.adminSchema }

// WithSchema runs fn inside a transaction whose search_path points at the
// given tenant schema (with the admin schema as fallback). The search_path
// is set via set_config(..., true), which is transaction-local: it reverts
// on commit or rollback, so the underlying connection returns to the pool
// clean no matter how fn exits.
func (db *SchemaDB) WithSchema(ctx context.Context, schema string, fn func(pgx.Tx) error) error {
	if !ValidSchemaName(schema) {
		return fmt.Errorf("%w: %q", ErrInvalidSchema, schema)
	}

	tx, err := db.beginner.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	searchPath := schema + ", " + db.adminSchema
	if _, err := tx.Exec(ctx, `SELECT set_config('search_path', $1, true)`, searchPath); err != nil {
		return errors.Join(ErrSchemaSwitchFailed, err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// WithAdmin runs fn inside a transaction scoped to the admin schema only.
func (db *SchemaDB) WithAdmin(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.beginner.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT set_config('search_path', $1, true)`, db.adminSchema); err != nil {
		return errors.Join(ErrSchemaSwitchFailed, err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Conn is a pooled connection pinned to one tenant schema for the duration
// of a multi-statement flow. It must be released exactly once.
type Conn struct {
	conn     *pgxpool.Conn
	released bool
}

// Acquire pins a connection to the given schema. Use this only when a flow
// genuinely needs multiple statements outside one transaction; prefer
// WithSchema otherwise. The caller must call Release.
func (db *SchemaDB) Acquire(ctx context.Context, schema string) (*Conn, error) {
	if !ValidSchemaName(schema) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchema, schema)
	}

	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}

	searchPath := schema + ", " + db.adminSchema
	if _, err := conn.Exec(ctx, `SELECT set_config('search_path', $1, false)`, searchPath); err != nil {
		conn.Release()
		return nil, errors.Join(ErrSchemaSwitchFailed, err)
	}
	return &Conn{conn: conn}, nil
}

// Exec runs a statement on the pinned connection.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := c.conn.Exec(ctx, sql, args...)
	return err
}

// Query runs a query on the pinned connection.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// QueryRow runs a single-row query on the pinned connection.
func (c *Conn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

// Release resets the connection's search_path and returns it to the pool.
// If the reset fails the underlying connection is closed instead of being
// handed to the next request with tenant state still attached.
func (c *Conn) Release(ctx context.Context) {
	if c.released {
		return
	}
	c.released = true

	if _, err := c.conn.Exec(ctx, `RESET search_path`); err != nil {
		// Destroy rather than recycle: pgxpool discards connections whose
		// underlying net.Conn has been closed.
		_ = c.conn.Conn().Close(ctx)
	}
	c.conn.Release()
}
