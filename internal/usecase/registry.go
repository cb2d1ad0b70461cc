package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"DemandScout/internal/domain"
)

// RunRecord tracks one pipeline invocation from trigger to completion.
type RunRecord struct {
	ID         string            `json:"id"`
	Platform   domain.Platform   `json:"platform"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
	Result     *domain.RunResult `json:"result,omitempty"`
}

// RunRegistry is an explicit registry of pipeline runs keyed by run id.
// The caller (usually the API layer) owns it; there is no process-wide
// singleton. Safe for concurrent use.
type RunRegistry struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
	now  func() time.Time
}

// NewRunRegistry builds an empty registry.
func NewRunRegistry() *RunRegistry {
	return &RunRegistry{
		runs: map[string]*RunRecord{},
		now:  time.Now,
	}
}

// Create registers a new in-flight run and returns its id.
func (r *RunRegistry) Create(platform domain.Platform) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.runs[id] = &RunRecord{
		ID:        id,
		Platform:  platform,
		StartedAt: r.now(),
	}
	r.mu.Unlock()
	return id
}

// Complete stores the result of a finished run.
func (r *RunRegistry) Complete(id string, result domain.RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.runs[id]
	if !ok {
		return fmt.Errorf("run %s not found", id)
	}
	finished := r.now()
	record.FinishedAt = &finished
	record.Result = &result
	return nil
}

// Get returns a copy of one run record.
func (r *RunRegistry) Get(id string) (RunRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.runs[id]
	if !ok {
		return RunRecord{}, false
	}
	return cloneRecord(record), true
}

// List returns all run records, most recent first.
func (r *RunRegistry) List() []RunRecord {
	r.mu.RLock()
	records := make([]RunRecord, 0, len(r.runs))
	for _, record := range r.runs {
		records = append(records, cloneRecord(record))
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records
}

// cloneRecord copies a record including its pointer fields so callers cannot
// reach back into registry state.
func cloneRecord(record *RunRecord) RunRecord {
	out := *record
	if record.FinishedAt != nil {
		finished := *record.FinishedAt
		out.FinishedAt = &finished
	}
	if record.Result != nil {
		result := *record.Result
		out.Result = &result
	}
	return out
}
