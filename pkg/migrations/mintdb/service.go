// Package mintdb holds all the migrations for the mint database
package mintdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the mint database
var Migrations = migrate.NewMigrations()
