package hostname

import (
	"net"
	"strings"
)

// Parse extracts the candidate tenant subdomain label from a raw request
// hostname. It returns ok=false when the hostname carries no tenant label:
// the base domain itself, www, localhost, loopback literals, and any host
// outside the configured base domain all fall through to the main site.
//
// Recognized shapes, in order:
//
//	localhost / 127.0.0.1 / ::1     -> no label
//	<label>.localhost               -> label (development convenience)
//	www.<baseDomain>                -> no label
//	<label>.<baseDomain>            -> label
//	<label>.staging.<baseDomain>    -> label (staging shares the namespace)
//	anything else                   -> no label
//
// Parse is pure: no I/O, no global state, same input always yields the same
// output.
func Parse(host, baseDomain string) (string, bool) {
	host = strings.ToLower(stripPort(strings.TrimSpace(host)))
	if host == "" {
		return "", false
	}

	if host == "localhost" || isLoopbackLiteral(host) {
		return "", false
	}

	if label, ok := strings.CutSuffix(host, ".localhost"); ok {
		return singleLabel(label)
	}

	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))
	if baseDomain == "" || host == baseDomain {
		return "", false
	}

	if label, ok := strings.CutSuffix(host, ".staging."+baseDomain); ok {
		return singleLabel(label)
	}

	if label, ok := strings.CutSuffix(host, "."+baseDomain); ok {
		if label == "www" {
			return "", false
		}
		return singleLabel(label)
	}

	return "", false
}

// stripPort removes a trailing :port. Bracketed IPv6 literals are unwrapped
// so loopback detection still works.
func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	// SplitHostPort rejects hosts without a port; also unwrap bare brackets.
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}

func isLoopbackLiteral(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// singleLabel accepts only a single DNS label as the tenant candidate.
// Nested labels (a.b.example.com) do not map to a tenant.
func singleLabel(label string) (string, bool) {
	if label == "" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}
