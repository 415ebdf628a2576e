// Package migrations embeds the sqlite schema files so a fresh database can
// be brought up to date on boot without shipping loose SQL alongside the
// binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
