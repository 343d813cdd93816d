// Package pg provides PostgreSQL plumbing for the platform: pgxpool
// connection setup with retry, goose migrations bridged through the
// database/sql adapter, health checks, and error classification helpers
// shared by the repositories.
package pg
