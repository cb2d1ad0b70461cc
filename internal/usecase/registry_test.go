package usecase

import (
	"testing"
	"time"

	"DemandScout/internal/domain"
)

func TestRegistryCreateAndComplete(t *testing.T) {
	t.Parallel()

	registry := NewRunRegistry()
	id := registry.Create(domain.PlatformHackerNews)
	if id == "" {
		t.Fatal("expected a run id")
	}

	record, ok := registry.Get(id)
	if !ok {
		t.Fatalf("run %s should exist", id)
	}
	if record.Platform != domain.PlatformHackerNews {
		t.Fatalf("unexpected platform %s", record.Platform)
	}
	if record.FinishedAt != nil || record.Result != nil {
		t.Fatal("in-flight run must not carry a result")
	}

	result := domain.RunResult{Status: domain.RunSuccess, Stats: domain.CrawlStats{DemandsSaved: 3}}
	if err := registry.Complete(id, result); err != nil {
		t.Fatalf("complete: %v", err)
	}

	record, _ = registry.Get(id)
	if record.FinishedAt == nil {
		t.Fatal("finished run must carry a timestamp")
	}
	if record.Result == nil || record.Result.Stats.DemandsSaved != 3 {
		t.Fatalf("unexpected result: %+v", record.Result)
	}
}

func TestRegistryCompleteUnknownRun(t *testing.T) {
	t.Parallel()

	registry := NewRunRegistry()
	if err := registry.Complete("missing", domain.RunResult{}); err == nil {
		t.Fatal("expected an error for unknown run id")
	}
}

func TestRegistryListMostRecentFirst(t *testing.T) {
	t.Parallel()

	registry := NewRunRegistry()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	registry.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first := registry.Create(domain.PlatformHackerNews)
	second := registry.Create(domain.PlatformHackerNews)
	third := registry.Create(domain.PlatformHackerNews)

	records := registry.List()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ID != third || records[1].ID != second || records[2].ID != first {
		t.Fatal("records should be ordered most recent first")
	}
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := NewRunRegistry()
	id := registry.Create(domain.PlatformHackerNews)

	record, _ := registry.Get(id)
	record.Platform = "mutated"

	fresh, _ := registry.Get(id)
	if fresh.Platform != domain.PlatformHackerNews {
		t.Fatal("Get must not expose internal state")
	}
}

func TestRegistryCopiesResultPointer(t *testing.T) {
	t.Parallel()

	registry := NewRunRegistry()
	id := registry.Create(domain.PlatformHackerNews)
	if err := registry.Complete(id, domain.RunResult{Status: domain.RunSuccess}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	record, _ := registry.Get(id)
	record.Result.Status = domain.RunError
	record.Result.Error = "mutated"
	*record.FinishedAt = record.FinishedAt.Add(time.Hour)

	fresh, _ := registry.Get(id)
	if fresh.Result.Status != domain.RunSuccess || fresh.Result.Error != "" {
		t.Fatalf("mutating a returned record must not touch registry state: %+v", fresh.Result)
	}

	listed := registry.List()
	listed[0].Result.Status = domain.RunError
	fresh, _ = registry.Get(id)
	if fresh.Result.Status != domain.RunSuccess {
		t.Fatal("List records must not share pointers with the registry")
	}
}
