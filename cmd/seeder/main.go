// Command seeder loads the authored content tree into the catalog.
// It is intended to be run offline or from CI, not as part of the server.
//
// Flags:
//
//	--content-root  directory holding the content tree (default: content)
//	--dry-run       parse and validate without writing to DB
//	--full-clear    remove topics no longer present in the tree
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	"github.com/codetrail/codetrail-backend/internal/adapter/postgres/catalog"
	"github.com/codetrail/codetrail-backend/internal/app"
	"github.com/codetrail/codetrail-backend/internal/app/seeder"
	"github.com/codetrail/codetrail-backend/internal/config"
)

// Compile-time interface assertions.
var (
	_ seeder.CatalogSeedRepo = (*catalog.Repo)(nil)
	_ seeder.TxRunner        = (*postgres.TxManager)(nil)
)

func main() {
	contentRootFlag := flag.String("content-root", "", "directory holding the content tree")
	dryRunFlag := flag.Bool("dry-run", false, "parse and validate without writing to DB")
	fullClearFlag := flag.Bool("full-clear", false, "remove topics no longer present in the tree")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	// Seeder config from environment, CLI flags override.
	var seedCfg seeder.Config
	if err := cleanenv.ReadEnv(&seedCfg); err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *contentRootFlag != "" {
		seedCfg.ContentRoot = *contentRootFlag
	}
	if *dryRunFlag {
		seedCfg.DryRun = true
	}
	if *fullClearFlag {
		seedCfg.FullClear = true
	}

	// Interrupt aborts the run; the in-flight transaction rolls back.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := catalog.New(pool)

	pipeline := seeder.NewPipeline(logger, txm, repo, seedCfg)
	summary, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(summary)
}

func printSummary(s *seeder.Summary) {
	mode := "applied"
	if s.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("seed %s in %s\n", mode, s.Duration.Round(time.Millisecond))
	fmt.Printf("  categories: %d\n", s.Categories)
	fmt.Printf("  topics:     %d\n", s.Topics)
	fmt.Printf("  lessons:    %d\n", s.Lessons)
	fmt.Printf("  examples:   %d\n", s.Examples)
	fmt.Printf("  questions:  %d\n", s.Questions)
	if s.SkippedDirs > 0 {
		fmt.Printf("  skipped:    %d\n", s.SkippedDirs)
	}
	if s.RemovedTopics > 0 {
		fmt.Printf("  removed:    %d\n", s.RemovedTopics)
	}
	if len(s.Warnings) > 0 {
		fmt.Printf("  warnings:   %d\n", len(s.Warnings))
	}
}
