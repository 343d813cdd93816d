// Package tenantdb directs storage operations at a tenant's logical schema
// without ever leaking schema state across pooled connections.
//
// Session-level schema switching on a shared pool is the classic multi-tenant
// correctness hazard: a connection whose search_path was mutated for one
// request can be handed to a concurrent request for a different tenant. This
// package closes that hole in two ways:
//
//   - WithSchema / WithAdmin run the work inside a transaction and set the
//     search_path with set_config(..., true), which is transaction-local and
//     reverts automatically on commit or rollback.
//   - Acquire pins one connection for multi-statement flows and hard-resets
//     the search_path on release; if the reset fails the connection is
//     destroyed rather than returned to the pool.
//
// The Dispatcher adapter bridges this package into the resolution
// middleware: after a tenant or admin classification it binds the resolved
// schema into the request context, and query helpers read it back out.
package tenantdb
