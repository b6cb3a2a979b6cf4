// Package migrations holds the versioned SQL schema of the service.
package migrations

import "embed"

// FS contains every *.sql migration, applied in version order by golang-migrate
//
//go:embed *.sql
var FS embed.FS
