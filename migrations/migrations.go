// Package migrations embeds the SQL schema files for each document store
// backend.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
