// Package migrations embeds the SQL migration files so they compile
// into the binary and can be applied on boot.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
