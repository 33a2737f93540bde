// Package migrations embeds the goose SQL migrations.
package migrations

import "embed"

// FS holds every *.sql migration at the root of the filesystem.
//
//go:embed *.sql
var FS embed.FS
