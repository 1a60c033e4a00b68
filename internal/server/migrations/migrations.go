// Package migrations embeds the users service schema for goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
