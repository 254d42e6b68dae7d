// Package postgres embeds the PostgreSQL schema migrations run by goose
// at server startup.
package postgres

import "embed"

//go:embed *.sql
var Migrations embed.FS
