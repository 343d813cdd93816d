package tenantstore

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookado/platform/pkg/pg"
	"github.com/bookado/platform/pkg/resolution"
)

// TenantsTable is the fully-qualified tenant registry table.
const TenantsTable = "admin.tenants"

const selectColumns = `id, slug, name, COALESCE(custom_domain, ''), status, schema_name, created_at`

// Store reads tenant records from PostgreSQL. It implements
// resolution.Provider and is strictly read-only: tenant lifecycle is owned
// by the admin approval flow.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store; assumes migrations already created the table.
func New(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, errors.New("tenantstore: pool is required")
	}
	return &Store{pool: pool}, nil
}

// FindBySlug retrieves an approved tenant by slug.
func (s *Store) FindBySlug(ctx context.Context, slug string) (*resolution.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, resolution.ErrTenantNotFound
	}

	row := s.pool.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM `+TenantsTable+`
		WHERE slug = $1 AND status = $2`,
		slug, resolution.StatusApproved,
	)
	return scanTenant(row)
}

// FindByCustomDomain retrieves an approved tenant by its custom domain.
func (s *Store) FindByCustomDomain(ctx context.Context, domain string) (*resolution.Tenant, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, resolution.ErrTenantNotFound
	}

	row := s.pool.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM `+TenantsTable+`
		WHERE custom_domain = $1 AND status = $2`,
		domain, resolution.StatusApproved,
	)
	return scanTenant(row)
}

func scanTenant(row pgx.Row) (*resolution.Tenant, error) {
	var t resolution.Tenant
	err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.CustomDomain, &t.Status, &t.SchemaName, &t.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, resolution.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
