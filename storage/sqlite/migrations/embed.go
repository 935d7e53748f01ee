package migrations

import "embed"

// FS contains the embedded hotel schema migrations.
//
//go:embed *.sql
var FS embed.FS
