// Package migrations embeds the SQL schema for the vector store.
package migrations

import "embed"

// FS holds the versioned .up.sql and .down.sql files.
//
//go:embed *.sql
var FS embed.FS
