package dispatch

import (
	"context"
	"errors"

	"github.com/fieldcrew/dispatch/core/model"
)

// ErrJobNotFound is returned by stores when a job id is unknown.
var ErrJobNotFound = errors.New("dispatch: job not found")

// ErrConflict is returned when a commit would create a hard conflict.
var ErrConflict = errors.New("dispatch: assignment conflicts with existing bookings")

// ErrLifecycle is returned when a commit would violate the job lifecycle.
var ErrLifecycle = errors.New("dispatch: illegal job status transition")

// JobStore is the persistence boundary the manager commits through. The
// engine never owns job records; implementations must provide at-most-one
// writer semantics per job.
type JobStore interface {
	Jobs(ctx context.Context) ([]model.Job, error)
	Job(ctx context.Context, id string) (model.Job, error)
	UpdateJob(ctx context.Context, job model.Job) error
}
