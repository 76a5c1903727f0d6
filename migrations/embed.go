// Package migrations embeds the PostgreSQL schema migrations so the server
// and cmd/migrate ship them inside the binary.
package migrations

import "embed"

// FS holds the numbered up/down migration pairs
//
//go:embed *.sql
var FS embed.FS
