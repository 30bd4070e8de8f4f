package archiver

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/types"
)

type fakeStore struct {
	mu      sync.Mutex
	metas   []types.DatasetMeta
	rollups []types.DailyRollup
}

func (f *fakeStore) SaveDatasetMeta(meta types.DatasetMeta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metas = append(f.metas, meta)
	return nil
}

func (f *fakeStore) SaveDailyRollup(rollup types.DailyRollup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rollups = append(f.rollups, rollup)
	return nil
}

func (f *fakeStore) GetDailyRollups(_ string) ([]types.DailyRollup, error) { return nil, nil }
func (f *fakeStore) TruncateAll() error                                    { return nil }

func (f *fakeStore) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.metas), len(f.rollups)
}

func testRecords() []types.Record {
	return []types.Record{
		{
			EmployeeName:      "Alice",
			EmployeeID:        "E001",
			TeamLead:          "Lead A",
			Team:              "1",
			Shift:             "Morning",
			Date:              "01/03/2025",
			NotificationCount: 10,
			NotificationAHT:   5,
		},
		{
			EmployeeName:    "Bob",
			EmployeeID:      "E002",
			TeamLead:        "Lead A",
			Team:            "1",
			Shift:           "Evening",
			Date:            "02/03/2025",
			RoomStatusCount: 20,
			RoomStatusAHT:   8,
		},
	}
}

func TestNewArchiver(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	cache := dataset.NewCache()
	store := &fakeStore{}

	a := NewArchiver(cache, store, types.TeamPolicyLastWrite, time.Second, logger)
	if a == nil {
		t.Fatal("expected archiver to be created")
	}
	if a.interval != time.Second {
		t.Errorf("expected interval 1s, got %v", a.interval)
	}
}

func TestFlushEmptyCacheWritesNothing(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	cache := dataset.NewCache()
	store := &fakeStore{}
	a := NewArchiver(cache, store, types.TeamPolicyLastWrite, time.Second, logger)

	if err := a.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	metas, rollups := store.counts()
	if metas != 0 || rollups != 0 {
		t.Errorf("expected no writes for empty cache, got %d metas, %d rollups", metas, rollups)
	}
}

func TestFlushWritesMetaAndRollups(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	cache := dataset.NewCache()
	cache.Replace(testRecords(), "activity.xlsx")
	store := &fakeStore{}
	a := NewArchiver(cache, store, types.TeamPolicyLastWrite, time.Second, logger)

	if err := a.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	metas, rollups := store.counts()
	if metas != 1 {
		t.Errorf("expected 1 dataset meta, got %d", metas)
	}
	if rollups != 2 {
		t.Errorf("expected 2 daily rollups, got %d", rollups)
	}

	meta := cache.Meta()
	for _, rollup := range store.rollups {
		if rollup.DatasetID != meta.DatasetID {
			t.Errorf("rollup dataset ID %s does not match %s", rollup.DatasetID, meta.DatasetID)
		}
	}
	if store.rollups[0].Date != "01/03/2025" {
		t.Errorf("expected first rollup for 01/03/2025, got %s", store.rollups[0].Date)
	}
	if store.rollups[0].Volume != 10 || store.rollups[0].AHT != 5 {
		t.Errorf("unexpected first rollup values: %+v", store.rollups[0])
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	cache := dataset.NewCache()
	store := &fakeStore{}
	a := NewArchiver(cache, store, types.TeamPolicyLastWrite, 50*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool)
	go func() {
		a.Start(ctx)
		done <- true
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("archiver did not stop within timeout after context cancel")
	}
}

func TestStartFlushesPeriodically(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	cache := dataset.NewCache()
	cache.Replace(testRecords(), "activity.xlsx")
	store := &fakeStore{}
	a := NewArchiver(cache, store, types.TeamPolicyLastWrite, 50*time.Millisecond, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan bool)
	go func() {
		a.Start(ctx)
		done <- true
	}()
	<-done

	metas, _ := store.counts()
	if metas == 0 {
		t.Error("expected at least one flush during run")
	}
}
