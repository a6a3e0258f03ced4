package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ozleads/lead-engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	business_id TEXT NOT NULL,
	job_id      TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'new',
	data        TEXT NOT NULL,
	review      TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (business_id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_jobs_business_status ON jobs(business_id, status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertJob(ctx context.Context, businessID string, job *model.Job) error {
	status := job.Status
	if status == "" {
		status = model.StatusNew
	}

	data, err := json.Marshal(job)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal job")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (business_id, job_id, status, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (business_id, job_id) DO UPDATE SET
		   status = excluded.status, data = excluded.data, updated_at = excluded.updated_at`,
		businessID, job.JobID, string(status), string(data), now, now,
	)
	return eris.Wrapf(err, "sqlite: upsert job %s", job.JobID)
}

func (s *SQLiteStore) GetJob(ctx context.Context, businessID, jobID string) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data, status, review FROM jobs WHERE business_id = ? AND job_id = ?`,
		businessID, jobID,
	)
	return scanJob(row.Scan, jobID)
}

func (s *SQLiteStore) ListJobs(ctx context.Context, businessID string, statuses []model.JobStatus) ([]model.Job, error) {
	query := `SELECT data, status, review FROM jobs WHERE business_id = ?`
	args := []any{businessID}
	if len(statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
		query += fmt.Sprintf(" AND status IN (%s)", placeholders)
		for _, st := range statusStrings(statuses) {
			args = append(args, st)
		}
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows.Scan, "")
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate jobs")
	}
	return jobs, nil
}

func (s *SQLiteStore) UpdateJobStatus(ctx context.Context, businessID, jobID string, status model.JobStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, updated_at = ? WHERE business_id = ? AND job_id = ?`,
		string(status), time.Now().UTC(), businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update job status %s", jobID)
	}
	return checkRowsAffected(res, jobID)
}

func (s *SQLiteStore) SkipJob(ctx context.Context, businessID, jobID, reason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs
		 SET status = ?, data = json_set(data, '$.status', ?, '$.skip_reason', ?), updated_at = ?
		 WHERE business_id = ? AND job_id = ?`,
		string(model.StatusSkipped), string(model.StatusSkipped), reason, time.Now().UTC(), businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: skip job %s", jobID)
	}
	return checkRowsAffected(res, jobID)
}

func (s *SQLiteStore) AttachReview(ctx context.Context, businessID, jobID string, review *model.JobReview) error {
	data, err := json.Marshal(review)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal review")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET review = ?, updated_at = ? WHERE business_id = ? AND job_id = ?`,
		string(data), time.Now().UTC(), businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: attach review %s", jobID)
	}
	return checkRowsAffected(res, jobID)
}

// scanJob decodes one job row. The status and review columns override
// whatever the serialized blob carries, since status transitions and
// review attachment update the columns without rewriting the blob.
func scanJob(scan func(dest ...any) error, jobID string) (*model.Job, error) {
	var data, status string
	var review sql.NullString

	if err := scan(&data, &status, &review); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "job %s", jobID)
		}
		return nil, eris.Wrap(err, "sqlite: scan job")
	}

	var job model.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal job")
	}
	job.Status = model.JobStatus(status)

	if review.Valid && review.String != "" {
		var r model.JobReview
		if err := json.Unmarshal([]byte(review.String), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal review")
		}
		job.AgentReview = &r
	}
	return &job, nil
}

func checkRowsAffected(res sql.Result, jobID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "job %s", jobID)
	}
	return nil
}
