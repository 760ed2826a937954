// Package migrations embeds the goose migrations for the portal database
// (self-hosted mode). The hosted gateway manages its own schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
