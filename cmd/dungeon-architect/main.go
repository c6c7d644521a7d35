package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/config"
	"github.com/dungeonarchitect/companion/internal/events"
	"github.com/dungeonarchitect/companion/internal/i18n"
	"github.com/dungeonarchitect/companion/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "systems":
		runSystemsCommand(args)
	case "events":
		runEventsCommand(args)
	case "select":
		runSelectCommand(args)
	case "generate":
		runGenerateCommand(args)
	case "import":
		runImportCommand(args)
	case "template":
		runTemplateCommand(args)
	case "export":
		runExportCommand(args)
	case "render":
		runRenderCommand(args)
	case "settings":
		runSettingsCommand(args)
	case "migrate":
		runMigrationCommand(args)
	case "backup":
		runBackupCommand(args)
	case "watch":
		runWatchCommand(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Dungeon Architect - Event Card Companion")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Println("Usage: dungeon-architect <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  systems    - List, add or remove game systems")
	fmt.Println("  events     - List, add, edit or remove event cards")
	fmt.Println("  select     - Manage the active system selection and draw size")
	fmt.Println("  generate   - Draw random events from the active selection")
	fmt.Println("  import     - Import events from a spreadsheet (.xlsx or .csv)")
	fmt.Println("  template   - Write the spreadsheet import template")
	fmt.Println("  export     - Export the event catalog (csv, json or xlsx)")
	fmt.Println("  render     - Export an event as a card image (PNG)")
	fmt.Println("  settings   - Show or change language and card theme")
	fmt.Println("  migrate    - Run database schema migrations")
	fmt.Println("  backup     - Back up the catalog database")
	fmt.Println("  watch      - Auto-import spreadsheets dropped into a directory")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  dungeon-architect generate -type Combate -count 2")
	fmt.Println("  dungeon-architect import events.xlsx")
	fmt.Println("  dungeon-architect render -id evt-seed-001")
	fmt.Println()
}

// app bundles the wired application: configuration, store, persistence
// and translation.
type app struct {
	cfg        *config.Config
	db         *storage.DB
	store      *catalog.Store
	adapter    *storage.Adapter
	dispatcher *events.Dispatcher
	logger     *slog.Logger
	tr         *i18n.Translator
}

// openApp loads config, opens the database, hydrates the store from
// the durable slot and wires the persistence observer so every
// accepted mutation is saved.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(storage.DefaultConfig(dbPath))
	if err != nil {
		return nil, err
	}

	var enc *storage.EncryptionConfig
	if cfg.Storage.Encrypt {
		passphrase := os.Getenv(cfg.Storage.PassphraseEnv)
		if passphrase == "" {
			_ = db.Close()
			return nil, fmt.Errorf("encryption enabled but %s is not set", cfg.Storage.PassphraseEnv)
		}
		enc = storage.DefaultEncryptionConfig(passphrase)
	}

	adapter := storage.NewAdapter(db, logger, enc)
	dispatcher := events.NewDispatcher()
	store := catalog.NewStore(adapter.Load(context.Background()).State(), dispatcher)
	dispatcher.Register(storage.NewPersistenceObserver(store, adapter))
	dispatcher.Register(events.NewLogObserver(logger))

	return &app{
		cfg:        cfg,
		db:         db,
		store:      store,
		adapter:    adapter,
		dispatcher: dispatcher,
		logger:     logger,
		tr:         i18n.New(store.Settings().Language),
	}, nil
}

// Close releases the database.
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}

// mustOpenApp opens the app or exits.
func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return a
}

// newLogger builds the slog logger from config: stderr, plus a
// rotating file when one is configured.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.Log.FilePath != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		})
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
