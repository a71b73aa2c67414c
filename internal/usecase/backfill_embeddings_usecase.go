package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"news-curator/internal/domain"
)

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Scanned int
	Written int
	Failed  int
	Batches int
}

// BackfillEmbeddingsUsecase computes and stores embeddings for articles that
// do not have one yet.
type BackfillEmbeddingsUsecase interface {
	Execute(ctx context.Context, batchSize, limit int, dryRun bool) (BackfillResult, error)
}

type backfillEmbeddingsUsecase struct {
	articleRepo domain.ArticleRepository
	encoder     domain.VectorEncoder
	logger      *slog.Logger
}

func NewBackfillEmbeddingsUsecase(
	articleRepo domain.ArticleRepository,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) BackfillEmbeddingsUsecase {
	return &backfillEmbeddingsUsecase{
		articleRepo: articleRepo,
		encoder:     encoder,
		logger:      logger,
	}
}

// Execute drains the missing-embedding backlog batch by batch. limit <= 0
// means no limit. A dry run scans and reports but writes nothing.
func (u *backfillEmbeddingsUsecase) Execute(ctx context.Context, batchSize, limit int, dryRun bool) (BackfillResult, error) {
	if batchSize <= 0 {
		batchSize = 32
	}

	var result BackfillResult
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fetch := batchSize
		if limit > 0 && limit-result.Scanned < fetch {
			fetch = limit - result.Scanned
		}
		if fetch <= 0 {
			return result, nil
		}

		articles, err := u.articleRepo.MissingEmbedding(ctx, fetch)
		if err != nil {
			return result, fmt.Errorf("failed to scan for missing embeddings: %w", err)
		}
		if len(articles) == 0 {
			return result, nil
		}
		result.Scanned += len(articles)
		result.Batches++

		if dryRun {
			// A dry run writes nothing, so a second scan would return the
			// same rows again. One batch is the report.
			u.logger.Info("dry run batch", "articles", len(articles))
			return result, nil
		}

		texts := make([]string, len(articles))
		for i, art := range articles {
			texts[i] = art.Title + "\n" + art.Description
		}
		embeddings, err := u.encoder.Encode(ctx, texts)
		if err != nil {
			return result, fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(embeddings) != len(articles) {
			return result, fmt.Errorf("expected %d embeddings, got %d", len(articles), len(embeddings))
		}

		writtenBefore := result.Written
		for i, art := range articles {
			if err := u.articleRepo.SetEmbedding(ctx, art.ID, embeddings[i]); err != nil {
				// One bad row should not lose the rest of the batch.
				u.logger.Warn("failed to store embedding",
					"article_id", art.ID, "error", err)
				result.Failed++
				continue
			}
			result.Written++
		}

		u.logger.Info("backfill batch completed",
			"batch", result.Batches,
			"written", result.Written,
			"failed", result.Failed,
		)

		if result.Written == writtenBefore {
			// Failed rows stay in the backlog, so another scan would return
			// the same batch again.
			return result, fmt.Errorf("no embeddings written in batch %d, aborting", result.Batches)
		}
		if len(articles) < fetch {
			return result, nil
		}
	}
}
