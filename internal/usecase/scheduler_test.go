package usecase

import (
	"context"
	"testing"
	"time"

	"DemandScout/internal/domain"
)

type fakeDriver struct {
	job     func(time.Time)
	stopped bool
}

func (f *fakeDriver) Start(_ context.Context, job func(time.Time)) error {
	f.job = job
	return nil
}

func (f *fakeDriver) Stop(_ context.Context) error {
	f.stopped = true
	return nil
}

func TestSchedulerRunsEveryPlatformPerTick(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		platform: domain.PlatformHackerNews,
		posts: map[domain.PostKind][]domain.Post{
			domain.KindAnnouncements: {matchingPost("I built a bot to automate invoice tracking")},
		},
	}
	store := &fakeStore{}
	pipeline := newTestPipeline(source, store)
	registry := NewRunRegistry()
	driver := &fakeDriver{}

	scheduler := NewScheduler(driver, pipeline, registry, 10, nil)
	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if driver.job == nil {
		t.Fatal("start should register a job")
	}

	driver.job(time.Now())

	records := registry.List()
	if len(records) != 1 {
		t.Fatalf("expected 1 registered run, got %d", len(records))
	}
	if records[0].Result == nil || records[0].Result.Status != domain.RunSuccess {
		t.Fatalf("scheduled run should be completed in the registry: %+v", records[0])
	}
	if pipeline.Stats().TotalProcessed != 1 {
		t.Fatalf("unexpected stats: %+v", pipeline.Stats())
	}

	if err := scheduler.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !driver.stopped {
		t.Fatal("stop should reach the driver")
	}
}

func TestSchedulerWithoutDriverIsNoop(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil, nil, nil, 0, nil)
	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := scheduler.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
