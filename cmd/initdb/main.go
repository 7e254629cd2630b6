package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/samirrijal/geofences/internal/adapters/postgres"
	"github.com/samirrijal/geofences/internal/pkg/config"
	"github.com/samirrijal/geofences/internal/pkg/logging"
)

// initdb loads the schema script into the configured database once.
func main() {
	cfg, err := config.Load("geofences-initdb")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, "text")

	schema := flag.String("schema", cfg.Database.SchemaFile, "path to the schema script")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 1)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if err := postgres.ApplySchema(ctx, db, *schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	log.Printf("OK  %s", *schema)
}
