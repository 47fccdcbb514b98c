// Package migrations embeds the goose migration files of the backend
// database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
