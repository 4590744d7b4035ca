// Command migrate applies migrations/schema.sql to the configured database
// with Atlas' declarative schema apply.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ski-stays/internal/handler/middleware"
	"ski-stays/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "print the planned statements without applying them")
	schemaPath := flag.String("schema", "migrations/schema.sql", "desired schema file")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if err := run(cfg, logger, *schemaPath, *dryRun, *timeout); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger, schemaPath string, dryRun bool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return err
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          "file://" + abs,
		DevURL:      cfg.DB.DevURL,
		DryRun:      dryRun,
		AutoApprove: true,
	})
	if err != nil {
		return err
	}

	for _, stmt := range res.Changes.Pending {
		logger.Info("pending", "stmt", stmt)
	}
	for _, stmt := range res.Changes.Applied {
		logger.Info("applied", "stmt", stmt)
	}
	logger.Info("schema is up to date",
		"dry_run", dryRun,
		"pending", len(res.Changes.Pending),
		"applied", len(res.Changes.Applied))
	return nil
}
