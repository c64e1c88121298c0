// Package store provides JobStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/fieldcrew/dispatch/core/dispatch"
	"github.com/fieldcrew/dispatch/core/model"
)

// MemoryStore is an in-memory JobStore guarded by a read-write mutex. Jobs
// are listed in insertion order so bulk runs over the store are
// deterministic.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[string]model.Job
	order []string
}

// NewMemoryStore creates a store seeded with the given jobs.
func NewMemoryStore(jobs ...model.Job) *MemoryStore {
	s := &MemoryStore{jobs: make(map[string]model.Job, len(jobs))}
	for _, j := range jobs {
		s.put(j)
	}
	return s
}

// Jobs returns all jobs in insertion order.
func (s *MemoryStore) Jobs(ctx context.Context) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Job, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.jobs[id])
	}
	return out, nil
}

// Job returns one job by id.
func (s *MemoryStore) Job(ctx context.Context, id string) (model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return model.Job{}, dispatch.ErrJobNotFound
	}
	return j, nil
}

// UpdateJob replaces an existing job record.
func (s *MemoryStore) UpdateJob(ctx context.Context, job model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return dispatch.ErrJobNotFound
	}
	s.jobs[job.ID] = job
	return nil
}

// AddJob inserts or replaces a job.
func (s *MemoryStore) AddJob(ctx context.Context, job model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(job)
	return nil
}

func (s *MemoryStore) put(j model.Job) {
	if _, ok := s.jobs[j.ID]; !ok {
		s.order = append(s.order, j.ID)
	}
	s.jobs[j.ID] = j
}
