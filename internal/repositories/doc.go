// Package repositories provides the persistence layer.
//
// TokenRepository implements the auth key-value port on SQLite so advertiser
// sessions survive between CLI invocations. The schema is managed by the
// embedded migrations in the shared package.
package repositories
