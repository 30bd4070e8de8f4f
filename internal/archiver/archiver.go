package archiver

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/report"
	"github.com/opsboard/backend/internal/storage"
	"github.com/opsboard/backend/internal/types"
)

// Archiver periodically writes dataset metadata and per-day rollups to the
// archival store. Writes are best-effort: a failed flush is logged and
// retried on the next tick.
type Archiver struct {
	cache    *dataset.Cache
	store    storage.Store
	policy   types.TeamAssignmentPolicy
	interval time.Duration
	logger   zerolog.Logger
}

// NewArchiver creates a new Archiver
func NewArchiver(cache *dataset.Cache, store storage.Store, policy types.TeamAssignmentPolicy, interval time.Duration, logger zerolog.Logger) *Archiver {
	return &Archiver{
		cache:    cache,
		store:    store,
		policy:   policy,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the periodic flush loop
func (a *Archiver) Start(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info().Dur("interval", a.interval).Msg("archiver started")

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("archiver stopped")
			return

		case <-ticker.C:
			if err := a.Flush(); err != nil {
				a.logger.Error().Err(err).Msg("archive flush failed")
			}
		}
	}
}

// Flush writes the current dataset's metadata and daily rollups to the store.
// An empty cache flushes nothing.
func (a *Archiver) Flush() error {
	records := a.cache.Snapshot()
	meta := a.cache.Meta()
	if len(records) == 0 || meta.DatasetID == "" {
		return nil
	}

	if err := a.store.SaveDatasetMeta(meta); err != nil {
		metrics.Get().RecordArchiveError()
		return err
	}

	rep := report.Build(records, a.policy)
	for _, day := range rep.Daily {
		rollup := types.DailyRollup{
			Date:      day.Date,
			DatasetID: meta.DatasetID,
			Volume:    day.Volume,
			AHT:       day.AHT,
		}
		if err := a.store.SaveDailyRollup(rollup); err != nil {
			metrics.Get().RecordArchiveError()
			return err
		}
		metrics.Get().RecordRollupArchived()
	}

	a.logger.Debug().
		Str("dataset_id", meta.DatasetID).
		Int("days", len(rep.Daily)).
		Msg("archived daily rollups")
	return nil
}
