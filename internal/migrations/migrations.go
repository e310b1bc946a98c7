// Package migrations embeds the PostgreSQL schema.
package migrations

import "embed"

// Dir is the directory within FS holding the numbered migration files.
const Dir = "sql"

//go:embed sql/*.sql
var FS embed.FS
