package storage

import "github.com/opsboard/backend/internal/types"

// Store defines the archival storage interface. Archival is write-mostly
// and strictly additive: the aggregation engine never reads archived data
// back, so a disabled store costs nothing.
type Store interface {
	SaveDatasetMeta(meta types.DatasetMeta) error
	SaveDailyRollup(rollup types.DailyRollup) error
	GetDailyRollups(date string) ([]types.DailyRollup, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveDatasetMeta(_ types.DatasetMeta) error             { return nil }
func (s *NoopStore) SaveDailyRollup(_ types.DailyRollup) error             { return nil }
func (s *NoopStore) GetDailyRollups(_ string) ([]types.DailyRollup, error) { return nil, nil }
func (s *NoopStore) TruncateAll() error                                    { return nil }
