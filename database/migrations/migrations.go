// Package migrations registers the schema migrations. Importing it (for
// side effects) makes them visible to pkg/migration.
package migrations
