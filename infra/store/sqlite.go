package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fieldcrew/dispatch/core/dispatch"
	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists jobs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS jobs (
        id TEXT PRIMARY KEY,
        status TEXT NOT NULL,
        scheduled_start INTEGER,
        estimated_minutes INTEGER NOT NULL DEFAULT 0,
        lat REAL,
        lon REAL,
        technician_id TEXT NOT NULL DEFAULT '',
        priority TEXT NOT NULL DEFAULT '',
        seq INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Jobs returns all jobs in insertion order.
func (s *SQLiteStore) Jobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, status, scheduled_start, estimated_minutes,
        lat, lon, technician_id, priority FROM jobs ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Job returns one job by id.
func (s *SQLiteStore) Job(ctx context.Context, id string) (model.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, status, scheduled_start, estimated_minutes,
        lat, lon, technician_id, priority FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return model.Job{}, dispatch.ErrJobNotFound
	}
	return j, err
}

// UpdateJob replaces an existing job record.
func (s *SQLiteStore) UpdateJob(ctx context.Context, job model.Job) error {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET status = ?, scheduled_start = ?,
        estimated_minutes = ?, lat = ?, lon = ?, technician_id = ?, priority = ?
        WHERE id = ?`,
		string(job.Status), startUnix(job), job.EstimatedMinutes,
		latOf(job.Coordinates), lonOf(job.Coordinates), job.TechnicianID,
		string(job.Priority), job.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return dispatch.ErrJobNotFound
	}
	return nil
}

// AddJob inserts or replaces a job.
func (s *SQLiteStore) AddJob(ctx context.Context, job model.Job) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO jobs
        (id, status, scheduled_start, estimated_minutes, lat, lon, technician_id, priority, seq)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, COALESCE((SELECT MAX(seq) FROM jobs), 0) + 1)
        ON CONFLICT(id) DO UPDATE SET status = excluded.status,
            scheduled_start = excluded.scheduled_start,
            estimated_minutes = excluded.estimated_minutes,
            lat = excluded.lat, lon = excluded.lon,
            technician_id = excluded.technician_id, priority = excluded.priority`,
		job.ID, string(job.Status), startUnix(job), job.EstimatedMinutes,
		latOf(job.Coordinates), lonOf(job.Coordinates), job.TechnicianID,
		string(job.Priority))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (model.Job, error) {
	var (
		j        model.Job
		status   string
		start    sql.NullInt64
		lat, lon sql.NullFloat64
		priority string
	)
	if err := r.Scan(&j.ID, &status, &start, &j.EstimatedMinutes, &lat, &lon, &j.TechnicianID, &priority); err != nil {
		return model.Job{}, err
	}
	j.Status = model.JobStatus(status)
	j.Priority = model.Priority(priority)
	if start.Valid {
		t := time.Unix(start.Int64, 0).UTC()
		j.ScheduledStart = &t
	}
	if lat.Valid && lon.Valid {
		j.Coordinates = &geo.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	return j, nil
}

func startUnix(j model.Job) any {
	if j.ScheduledStart == nil {
		return nil
	}
	return j.ScheduledStart.Unix()
}

func latOf(c *geo.Coordinates) any {
	if c == nil {
		return nil
	}
	return c.Lat
}

func lonOf(c *geo.Coordinates) any {
	if c == nil {
		return nil
	}
	return c.Lon
}
