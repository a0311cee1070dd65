// Package migrations embeds the goose migrations for the SQL store backends.
// Each dialect lives in its own directory of the embedded FS.
package migrations

import "embed"

// Migrations holds sqlite/*.sql and postgres/*.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)
