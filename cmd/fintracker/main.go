// Command fintracker opens the personal finance store, brings the
// schema up to date, materializes pending recurring entries and prints
// the requested collection as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"fintracker/internal/config"
	"fintracker/internal/contract"
	"fintracker/internal/db"
	"fintracker/internal/schema"
	"fintracker/internal/services"
	"fintracker/internal/store"
	"fintracker/internal/views"
)

func main() {
	kind := flag.String("list", string(contract.KindWallet), "collection to print")
	skipExpand := flag.Bool("no-expand", false, "skip recurring entry expansion")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	database, err := db.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := schema.Migrate(database.DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	engine := services.NewEngine(database, store.Config{SoftDelete: cfg.Database.SoftDelete})
	if !*skipExpand {
		if err := engine.ExpandDue(ctx, time.Now()); err != nil {
			log.Fatalf("failed to expand recurring entries: %v", err)
		}
	}

	composer := views.New(database)
	rows, err := composer.Rows(ctx, views.Query{Kind: contract.Kind(*kind)})
	if err != nil {
		log.Fatalf("failed to read %s: %v", *kind, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}
}
