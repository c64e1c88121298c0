package store

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldcrew/dispatch/core/dispatch"
	"github.com/fieldcrew/dispatch/core/model"
)

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore(
		model.Job{ID: "c"},
		model.Job{ID: "a"},
		model.Job{ID: "b"},
	)
	jobs, err := s.Jobs(context.Background())
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, j := range jobs {
		if j.ID != want[i] {
			t.Fatalf("order at %d: got %s want %s", i, j.ID, want[i])
		}
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore(model.Job{ID: "j1", Status: model.StatusPendingSchedule})
	if err := s.UpdateJob(context.Background(), model.Job{ID: "j1", Status: model.StatusScheduled}); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	j, err := s.Job(context.Background(), "j1")
	if err != nil {
		t.Fatalf("Job: %v", err)
	}
	if j.Status != model.StatusScheduled {
		t.Fatalf("update lost: %+v", j)
	}
}

func TestMemoryStoreUnknownJob(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Job(context.Background(), "nope"); !errors.Is(err, dispatch.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := s.UpdateJob(context.Background(), model.Job{ID: "nope"}); !errors.Is(err, dispatch.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound on update, got %v", err)
	}
}

func TestMemoryStoreAddJobUpserts(t *testing.T) {
	s := NewMemoryStore()
	s.AddJob(context.Background(), model.Job{ID: "j1", EstimatedMinutes: 60})
	s.AddJob(context.Background(), model.Job{ID: "j1", EstimatedMinutes: 90})
	jobs, _ := s.Jobs(context.Background())
	if len(jobs) != 1 || jobs[0].EstimatedMinutes != 90 {
		t.Fatalf("upsert failed: %+v", jobs)
	}
}
