package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tenant record. Only approved tenants
// are eligible for resolution; every other state is treated as not found.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Tenant is the read-only projection of a tenant record needed for request
// routing. The resolver never mutates tenant records; the admin approval
// flow owns their lifecycle.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	Status       Status    `json:"status"`
	SchemaName   string    `json:"schema_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Approved reports whether the tenant is eligible for resolution.
func (t *Tenant) Approved() bool {
	return t != nil && t.Status == StatusApproved
}

// Provider loads tenant records from the storage layer. Implementations
// must filter to approved tenants and return ErrTenantNotFound for both
// missing and non-approved records.
type Provider interface {
	// FindBySlug retrieves an approved tenant by its slug.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByCustomDomain retrieves an approved tenant by its custom domain.
	FindByCustomDomain(ctx context.Context, domain string) (*Tenant, error)
}
