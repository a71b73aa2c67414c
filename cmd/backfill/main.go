package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"news-curator/internal/adapter/embedder"
	"news-curator/internal/adapter/repository"
	"news-curator/internal/infra"
	"news-curator/internal/infra/config"
	"news-curator/internal/usecase"
)

var (
	version = "dev"

	// Global flags
	verbose bool

	// Run command flags
	batchSize int
	limit     int
	dryRun    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "backfill",
	Short:   "Compute embeddings for stored articles",
	Version: version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Embed every article that has no stored vector",
	Long: `Scan the articles table for rows without an embedding, compute
vectors through the configured embedding provider, and write them back
in batches.

Examples:
  # Drain the whole backlog
  backfill run

  # Smaller batches against a slow provider
  backfill run --batch-size 8

  # See the backlog size without writing anything
  backfill run --dry-run`,
	RunE: runBackfill,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	runCmd.Flags().IntVar(&batchSize, "batch-size", 32, "articles per embedding request")
	runCmd.Flags().IntVar(&limit, "limit", 0, "stop after this many articles (0 = no limit)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "scan and report without writing")

	rootCmd.AddCommand(runCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewPostgresDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}
	defer dbPool.Close()

	articleRepo := repository.NewArticleRepository(dbPool)
	encoder := embedder.NewHTTPEmbedder(cfg.EmbeddingURL, cfg.EmbeddingModel,
		cfg.EmbeddingAPIKey, cfg.EmbeddingTimeout)

	uc := usecase.NewBackfillEmbeddingsUsecase(articleRepo, encoder, logger)
	result, err := uc.Execute(ctx, batchSize, limit, dryRun)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("backfill finished",
		"scanned", result.Scanned,
		"written", result.Written,
		"failed", result.Failed,
		"batches", result.Batches,
		"dry_run", dryRun,
	)
	return nil
}
