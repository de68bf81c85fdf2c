package sqlassets

import "embed"

// Migrations holds the versioned schema migrations in golang-migrate layout
// (<version>_<name>.up.sql / .down.sql).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files.
const MigrationsDir = "migrations"
