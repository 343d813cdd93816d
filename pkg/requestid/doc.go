// Package requestid assigns a correlation id to every request and carries
// it on the context so log lines and downstream calls can be tied back to
// one request. Inbound X-Request-ID headers are honored when well-formed;
// anything else gets a fresh UUID.
package requestid
