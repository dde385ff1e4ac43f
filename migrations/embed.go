// Package migrations embeds the goose SQL migration files so the
// migrate command can apply them without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
