package worker

import (
	"context"
	"time"

	"news-curator/internal/infra/logger"
	"news-curator/internal/usecase"
)

const sweepTimeout = 2 * time.Minute

// IngestWorker periodically sweeps the configured news sources into storage.
type IngestWorker struct {
	ingestUsecase usecase.IngestArticlesUsecase
	interval      time.Duration
	logger        *logger.ContextLogger
	stopChan      chan struct{}
	doneChan      chan struct{}
}

func NewIngestWorker(
	ingestUsecase usecase.IngestArticlesUsecase,
	interval time.Duration,
	ctxLogger *logger.ContextLogger,
) *IngestWorker {
	return &IngestWorker{
		ingestUsecase: ingestUsecase,
		interval:      interval,
		logger:        ctxLogger,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately so a fresh
// deployment has articles before the first tick.
func (w *IngestWorker) Start() {
	w.logger.WithContext(context.Background()).Info("Starting IngestWorker", "interval", w.interval)
	go w.run()
}

// Stop signals the loop to exit and waits for an in-flight sweep to finish.
func (w *IngestWorker) Stop() {
	w.logger.WithContext(context.Background()).Info("Stopping IngestWorker")
	close(w.stopChan)
	<-w.doneChan
}

func (w *IngestWorker) run() {
	defer close(w.doneChan)

	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *IngestWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	ctx = logger.WithStage(ctx, "ingest_sweep")
	log := w.logger.WithContext(ctx)

	result, err := w.ingestUsecase.Sweep(ctx)
	if err != nil {
		log.Error("Ingest sweep failed", "error", err)
		return
	}
	log.Info("Ingest sweep finished",
		"fetched", result.Fetched,
		"upserted", result.Upserted,
	)
}
