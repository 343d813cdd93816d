package resolution

import "github.com/google/uuid"

// Class is the site classification of a resolved request. Unresolved is a
// transient state: the middleware converts it to a terminal class according
// to the configured unresolved policy before attaching it to the context.
type Class uint8

const (
	ClassUnresolved Class = iota
	ClassMainSite
	ClassAdminSite
	ClassTenantSite
)

func (c Class) String() string {
	switch c {
	case ClassMainSite:
		return "main_site"
	case ClassAdminSite:
		return "admin_site"
	case ClassTenantSite:
		return "tenant_site"
	default:
		return "unresolved"
	}
}

// Method identifies the strategy that produced a resolution.
type Method string

const (
	MethodNone         Method = "none"
	MethodExplicit     Method = "explicit-param"
	MethodCustomDomain Method = "custom-domain"
	MethodSubdomain    Method = "subdomain"
)

// Result is the outcome of resolving one request. Exactly one of the Is*
// classifiers is true for a terminal result; all are false only while the
// result is still Unresolved. Once attached to the request context the
// result does not change for the lifetime of the request.
type Result struct {
	Class    Class
	Method   Method
	Tenant   *Tenant
	Hostname string
}

// MainSite builds a terminal main-site result.
func MainSite(host string) Result {
	return Result{Class: ClassMainSite, Method: MethodNone, Hostname: host}
}

// AdminSite builds a terminal admin-site result.
func AdminSite(host string) Result {
	return Result{Class: ClassAdminSite, Method: MethodNone, Hostname: host}
}

// TenantSite builds a terminal tenant-site result for an approved tenant.
func TenantSite(host string, t *Tenant, method Method) Result {
	return Result{Class: ClassTenantSite, Method: method, Tenant: t, Hostname: host}
}

// Unresolved builds the transient no-match result.
func Unresolved(host string) Result {
	return Result{Class: ClassUnresolved, Method: MethodNone, Hostname: host}
}

func (r Result) IsMainSite() bool   { return r.Class == ClassMainSite }
func (r Result) IsAdminSite() bool  { return r.Class == ClassAdminSite }
func (r Result) IsTenantSite() bool { return r.Class == ClassTenantSite }

// IsCustomDomain reports whether the tenant was matched through its custom
// domain binding rather than the default subdomain.
func (r Result) IsCustomDomain() bool {
	return r.IsTenantSite() && r.Method == MethodCustomDomain
}

// Terminal reports whether the result reached one of the four final states.
func (r Result) Terminal() bool { return r.Class != ClassUnresolved }

// Slug returns the resolved tenant slug, or empty when no tenant matched.
func (r Result) Slug() string {
	if r.Tenant == nil {
		return ""
	}
	return r.Tenant.Slug
}

// TenantID returns the resolved tenant id and whether one is present.
func (r Result) TenantID() (uuid.UUID, bool) {
	if r.Tenant == nil {
		return uuid.UUID{}, false
	}
	return r.Tenant.ID, true
}

// SchemaName returns the logical schema to dispatch storage operations to,
// or empty when the request is not bound to a tenant schema.
func (r Result) SchemaName() string {
	if r.Tenant == nil {
		return ""
	}
	return r.Tenant.SchemaName
}
