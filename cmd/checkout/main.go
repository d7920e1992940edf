package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dshills/gocheckout/internal/checkout"
	"github.com/dshills/gocheckout/internal/config"
	"github.com/dshills/gocheckout/internal/event"
	"github.com/dshills/gocheckout/internal/logger"
	"github.com/dshills/gocheckout/internal/mcp"
	"github.com/dshills/gocheckout/internal/notifier"
	"github.com/dshills/gocheckout/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("Checkout MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
	}

	app := &cli.App{
		Name:    "checkout",
		Usage:   "order management MCP server over stdio",
		Version: version,
		// stdout is reserved for the MCP protocol
		ErrWriter: os.Stderr,
		Action:    serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve MCP tools on stdio (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations and print the schema version",
				Action: migrate,
			},
			{
				Name:   "rollback",
				Usage:  "roll back the most recent schema migration",
				Action: rollback,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "checkout: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger shared by every command
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("checkout MCP server starting",
		"version", version,
		"build_mode", storage.BuildMode,
		"driver", storage.DriverName,
		"db_path", cfg.DB.Path,
	)

	store, err := storage.NewSQLiteStorage(cfg.DB.Path, storage.WithProductCacheSize(cfg.DB.ProductCacheSize))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	dispatcher := event.NewDispatcher()
	if cfg.Handlers.Defaults {
		notifier.RegisterDefaults(dispatcher, log)
	}

	svc := checkout.New(store.Orders(), store.Customers(), store.Products(), dispatcher, log)
	server := mcp.NewServer(svc, log)

	// Set up graceful shutdown
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal, shutting down gracefully")
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	log.Info("server stopped")
	return nil
}

func migrate(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := storage.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := storage.ApplyMigrations(c.Context, db); err != nil {
		return err
	}
	return printVersion(c.Context, db, log)
}

func rollback(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := storage.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := storage.RollbackMigration(c.Context, db); err != nil {
		return err
	}
	return printVersion(c.Context, db, log)
}

func printVersion(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	v, err := storage.SchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	log.Info("schema version", "version", v)
	fmt.Println(v)
	return nil
}
