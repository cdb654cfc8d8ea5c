// Package migrations embeds the SQL schema for the SQLite preference store.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
