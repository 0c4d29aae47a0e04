package main

import (
	"flag"
	"log"

	"github.com/veridlabs/biomint-middleware/pkg/config"
	"github.com/veridlabs/biomint-middleware/pkg/migrations/mintdb"
	"github.com/veridlabs/biomint-middleware/pkg/pgutil"
	mghelper "github.com/veridlabs/biomint-middleware/pkg/pgutil/migrations"

	"github.com/uptrace/bun/migrate"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for mint database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, mintdb.Migrations)

	err = mghelper.RunMigrations(migrator, flag.Args()...)
	if err != nil {
		mghelper.Exitf(err.Error())
	}
}
