// Package migrations embeds the SQL schema migrations compiled into the
// binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
