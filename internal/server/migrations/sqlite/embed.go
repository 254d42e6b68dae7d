// Package sqlite embeds the SQLite schema migrations for single-binary
// deployments without a PostgreSQL instance.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
