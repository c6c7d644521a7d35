package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dungeonarchitect/companion/internal/config"
	"github.com/dungeonarchitect/companion/internal/storage"
	"github.com/dungeonarchitect/companion/internal/watcher"
)

func runMigrationCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: dungeon-architect migrate <up|down|version>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Error resolving database path: %v", err)
	}

	mgr, err := storage.NewMigrationManager(dbPath)
	if err != nil {
		log.Fatalf("Error creating migration manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	switch args[0] {
	case "up":
		if err := mgr.Up(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := mgr.Down(); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		fmt.Println("Rolled back one migration")
	case "version":
		version, dirty, err := mgr.Version()
		if err != nil {
			log.Fatalf("Error reading version: %v", err)
		}
		fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)
	default:
		fmt.Println("Usage: dungeon-architect migrate <up|down|version>")
		os.Exit(1)
	}
}

func runBackupCommand(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dir := fs.String("dir", "", "Backup directory (default: backups/ next to the database)")
	dumpJSON := fs.Bool("json", false, "Also write a readable JSON dump of the catalog")
	_ = fs.Parse(args)

	app := mustOpenApp()
	defer app.Close()

	backupPath, err := storage.NewBackupManager(app.db.Path()).Backup(*dir)
	if err != nil {
		log.Fatalf("Backup failed: %v", err)
	}
	fmt.Printf("Backup written to %s\n", backupPath)

	if *dumpJSON {
		target := *dir
		if target == "" {
			target = "."
		}
		dumpPath, err := storage.DumpJSON(context.Background(), app.adapter, target)
		if err != nil {
			log.Fatalf("JSON dump failed: %v", err)
		}
		fmt.Printf("Catalog dump written to %s\n", dumpPath)
	}
}

func runWatchCommand(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory to watch (default: configured watch dir)")
	_ = fs.Parse(args)

	app := mustOpenApp()
	defer app.Close()

	watchDir := *dir
	if watchDir == "" {
		watchDir = app.cfg.Import.WatchDir
	}
	if watchDir == "" {
		log.Fatalf("Error: no watch directory configured (use -dir or set import.watch_dir)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for spreadsheet drops. Press Ctrl+C to stop.\n", watchDir)
	if err := watcher.New(watchDir, app.store, app.logger).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Watcher stopped: %v", err)
	}
}
