package hostname

import "strings"

// AdminLabel is the subdomain routed to the platform admin site. It bypasses
// tenant lookup entirely instead of falling through to the main site.
const AdminLabel = "admin"

// reservedLabels are infrastructure subdomains that can never be tenant
// slugs. Requests to them resolve to the main site (or the admin site for
// AdminLabel).
var reservedLabels = map[string]struct{}{
	"www":        {},
	"api":        {},
	"admin":      {},
	"main":       {},
	"app":        {},
	"staging":    {},
	"cdn":        {},
	"assets":     {},
	"static":     {},
	"img":        {},
	"media":      {},
	"files":      {},
	"mail":       {},
	"smtp":       {},
	"blog":       {},
	"support":    {},
	"help":       {},
	"docs":       {},
	"status":     {},
	"monitoring": {},
	"metrics":    {},
	"logs":       {},
	"ns1":        {},
	"ns2":        {},
}

// IsReserved reports whether label is an infrastructure subdomain that must
// not be treated as a tenant slug.
func IsReserved(label string) bool {
	_, ok := reservedLabels[strings.ToLower(label)]
	return ok
}

// IsAdminLabel reports whether label addresses the platform admin site.
func IsAdminLabel(label string) bool {
	return strings.EqualFold(label, AdminLabel)
}
