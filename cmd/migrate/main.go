package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roomdesk/meeting-room-backend/internal/config"
	"github.com/roomdesk/meeting-room-backend/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.MigrationsPath, cfg.DBDSN); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}

	// Sanity check: the runtime connection should open against the migrated schema.
	pool, err := db.NewPool(context.Background(), cfg.DBDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime db open failed: %v\n", err)
		os.Exit(1)
	}
	pool.Close()

	fmt.Println("migrations applied")
}
