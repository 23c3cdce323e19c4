package postgres

import "embed"

// MigrationsFS holds the goose migration files, embedded so the binary can
// migrate its own schema without a deploy-time file dependency.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the directory inside MigrationsFS that goose should read.
const MigrationsDir = "migrations"
