package migrations

import "embed"

// Files contains the SQL migrations of every supported driver, one directory
// per driver name, applied in ascending filename order.
//
//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS
