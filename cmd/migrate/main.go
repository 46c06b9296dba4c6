package main

import (
	"fmt"
	"log"

	"fintracker/internal/config"
	"fintracker/internal/db"
	"fintracker/internal/schema"
)

func main() {
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
	version, dirty, err := schema.Version(database.DB)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}
	if dirty {
		log.Fatalf("schema version %d is dirty", version)
	}
	fmt.Printf("schema at version %d\n", version)
}
