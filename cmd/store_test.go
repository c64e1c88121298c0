package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/infra/snapshot"
	"github.com/fieldcrew/dispatch/infra/store"
)

func snapWith(jobs ...model.Job) *snapshot.Snapshot {
	return &snapshot.Snapshot{Jobs: jobs}
}

func TestOpenStoreDefaultsToMemory(t *testing.T) {
	dbPath = ""
	st, err := openStore(context.Background(), snapWith(model.Job{ID: "j1", Status: model.StatusPendingSchedule}))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer closeStore(st)
	if _, ok := st.(*store.MemoryStore); !ok {
		t.Fatalf("expected in-memory store, got %T", st)
	}
}

func TestOpenStoreSQLiteSeedsAndPersists(t *testing.T) {
	dbPath = filepath.Join(t.TempDir(), "jobs.db")
	defer func() { dbPath = "" }()

	ctx := context.Background()
	seed := snapWith(model.Job{ID: "j1", Status: model.StatusPendingSchedule, EstimatedMinutes: 60})

	st, err := openStore(ctx, seed)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, ok := st.(*store.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", st)
	}
	job, err := st.Job(ctx, "j1")
	if err != nil {
		t.Fatalf("seeded job: %v", err)
	}
	job.Status = model.StatusScheduled
	job.TechnicianID = "t1"
	if err := st.UpdateJob(ctx, job); err != nil {
		t.Fatalf("update: %v", err)
	}
	closeStore(st)

	// A later run against the same database keeps the committed state and
	// ignores the new snapshot's job list.
	st, err = openStore(ctx, snapWith(model.Job{ID: "j2", Status: model.StatusPendingSchedule}))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeStore(st)
	jobs, err := st.Jobs(ctx)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("durable state should win over the snapshot, got %+v", jobs)
	}
	if jobs[0].Status != model.StatusScheduled || jobs[0].TechnicianID != "t1" {
		t.Fatalf("committed assignment lost: %+v", jobs[0])
	}
}
