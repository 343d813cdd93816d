// Package hostname parses request hostnames into candidate tenant subdomain
// labels and classifies infrastructure labels that must never be treated as
// tenant identifiers.
//
// Parsing is a pure function over the hostname and the configured base
// domain. It understands local development conventions (localhost and
// loopback literals, <label>.localhost) as well as staging environments that
// share the production tenant namespace (<label>.staging.<baseDomain>).
//
// # Usage
//
//	label, ok := hostname.Parse("acme.example.com:8080", "example.com")
//	// label == "acme", ok == true
//
//	hostname.IsReserved("api")    // true
//	hostname.IsAdminLabel("admin") // true
//
// The reserved set covers labels used by platform infrastructure (www, api,
// cdn, mail, ...). The "admin" label is special: callers route it to the
// admin site instead of falling back to the main site.
package hostname
