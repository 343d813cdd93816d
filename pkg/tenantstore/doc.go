// Package tenantstore implements the tenant lookup port on PostgreSQL.
//
// It reads the tenant registry table (owned by the admin approval flow) and
// serves the two lookups the resolution engine needs: by slug and by custom
// domain. Both filter to approved tenants; every other lifecycle state is
// reported as not found so the resolver treats it identically.
package tenantstore
