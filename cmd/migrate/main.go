// Command migrate applies or rolls back the embedded database schema.
//
//	migrate up
//	migrate down [-steps n]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/migrations"
	"github.com/JaimeStill/pledge/pkg/database"
	"github.com/JaimeStill/pledge/pkg/logging"
)

func main() {
	steps := flag.Int("steps", 1, "Number of migrations to roll back")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-steps n] up|down")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed: ", err)
	}

	logger := logging.New(&cfg.Logging, cfg.LogAttrs()...).With("system", "migrate")

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatal("database init failed: ", err)
	}
	conn := db.Connection()
	defer conn.Close()

	switch flag.Arg(0) {
	case "up":
		err = database.Migrate(conn, migrations.FS, migrations.Dir, logger)
	case "down":
		err = database.Rollback(conn, migrations.FS, migrations.Dir, *steps, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}
