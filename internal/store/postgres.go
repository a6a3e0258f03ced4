package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/ozleads/lead-engine/internal/db"
	"github.com/ozleads/lead-engine/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	business_id TEXT NOT NULL,
	job_id      TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'new',
	data        JSONB NOT NULL,
	review      JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (business_id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_jobs_business_status ON jobs(business_id, status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) UpsertJob(ctx context.Context, businessID string, job *model.Job) error {
	status := job.Status
	if status == "" {
		status = model.StatusNew
	}

	data, err := json.Marshal(job)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal job")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (business_id, job_id, status, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 ON CONFLICT (business_id, job_id) DO UPDATE SET
		   status = EXCLUDED.status, data = EXCLUDED.data, updated_at = now()`,
		businessID, job.JobID, string(status), data,
	)
	return eris.Wrapf(err, "postgres: upsert job %s", job.JobID)
}

func (s *PostgresStore) GetJob(ctx context.Context, businessID, jobID string) (*model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data, status, review FROM jobs WHERE business_id = $1 AND job_id = $2`,
		businessID, jobID,
	)

	var data []byte
	var status string
	var review []byte
	if err := row.Scan(&data, &status, &review); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "job %s", jobID)
		}
		return nil, eris.Wrap(err, "postgres: scan job")
	}
	return decodeJob(data, status, review)
}

func (s *PostgresStore) ListJobs(ctx context.Context, businessID string, statuses []model.JobStatus) ([]model.Job, error) {
	query := `SELECT data, status, review FROM jobs WHERE business_id = $1`
	args := []any{businessID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, statusStrings(statuses))
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var data []byte
		var status string
		var review []byte
		if err := rows.Scan(&data, &status, &review); err != nil {
			return nil, eris.Wrap(err, "postgres: scan job row")
		}
		job, err := decodeJob(data, status, review)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate jobs")
	}
	return jobs, nil
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, businessID, jobID string, status model.JobStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = now() WHERE business_id = $2 AND job_id = $3`,
		string(status), businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update job status %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "job %s", jobID)
	}
	return nil
}

func (s *PostgresStore) SkipJob(ctx context.Context, businessID, jobID, reason string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs
		 SET status = $1,
		     data = jsonb_set(jsonb_set(data, '{status}', to_jsonb($1::text)), '{skip_reason}', to_jsonb($2::text)),
		     updated_at = now()
		 WHERE business_id = $3 AND job_id = $4`,
		string(model.StatusSkipped), reason, businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: skip job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "job %s", jobID)
	}
	return nil
}

func (s *PostgresStore) AttachReview(ctx context.Context, businessID, jobID string, review *model.JobReview) error {
	data, err := json.Marshal(review)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal review")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET review = $1, updated_at = now() WHERE business_id = $2 AND job_id = $3`,
		data, businessID, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: attach review %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "job %s", jobID)
	}
	return nil
}

// decodeJob decodes a job blob with its authoritative status and optional
// review columns.
func decodeJob(data []byte, status string, review []byte) (*model.Job, error) {
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal job")
	}
	job.Status = model.JobStatus(status)

	if len(review) > 0 {
		var r model.JobReview
		if err := json.Unmarshal(review, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal review")
		}
		job.AgentReview = &r
	}
	return &job, nil
}
