package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozleads/lead-engine/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresFromPool(mock), mock
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestPostgres_UpsertJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	job := testJob("job-1")

	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs("biz-1", "job-1", "new", mustMarshal(t, job)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.UpsertJob(context.Background(), "biz-1", job))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	job := testJob("job-1")

	rows := pgxmock.NewRows([]string{"data", "status", "review"}).
		AddRow(mustMarshal(t, job), "quoting", []byte(nil))
	mock.ExpectQuery(`SELECT data, status, review FROM jobs WHERE business_id = \$1 AND job_id = \$2`).
		WithArgs("biz-1", "job-1").
		WillReturnRows(rows)

	got, err := s.GetJob(context.Background(), "biz-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen repaint", got.Name)
	// The status column is authoritative over the serialized blob.
	assert.Equal(t, model.StatusQuoting, got.Status)
	assert.Nil(t, got.AgentReview)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetJobWithReview(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	job := testJob("job-1")
	review := &model.JobReview{Score: 8, Recommendation: model.RecommendSend}

	rows := pgxmock.NewRows([]string{"data", "status", "review"}).
		AddRow(mustMarshal(t, job), "new", mustMarshal(t, review))
	mock.ExpectQuery(`SELECT data, status, review FROM jobs`).
		WithArgs("biz-1", "job-1").
		WillReturnRows(rows)

	got, err := s.GetJob(context.Background(), "biz-1", "job-1")
	require.NoError(t, err)
	require.NotNil(t, got.AgentReview)
	assert.Equal(t, 8, got.AgentReview.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetJobNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data, status, review FROM jobs`).
		WithArgs("biz-1", "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetJob(context.Background(), "biz-1", "missing")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListJobsStatusFilter(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	job := testJob("job-1")

	rows := pgxmock.NewRows([]string{"data", "status", "review"}).
		AddRow(mustMarshal(t, job), "new", []byte(nil))
	mock.ExpectQuery(`SELECT data, status, review FROM jobs WHERE business_id = \$1 AND status = ANY\(\$2\)`).
		WithArgs("biz-1", []string{"new", "contacted"}).
		WillReturnRows(rows)

	jobs, err := s.ListJobs(context.Background(), "biz-1", model.StatusGroups["leads"])
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].JobID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateJobStatusNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE jobs SET status = \$1`).
		WithArgs("quoting", "biz-1", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateJobStatus(context.Background(), "biz-1", "missing", model.StatusQuoting)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SkipJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE jobs`).
		WithArgs("skipped", "too far away", "biz-1", "job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.SkipJob(context.Background(), "biz-1", "job-1", "too far away"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_AttachReview(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	review := &model.JobReview{Score: 8, Recommendation: model.RecommendSend}

	mock.ExpectExec(`UPDATE jobs SET review = \$1`).
		WithArgs(mustMarshal(t, review), "biz-1", "job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.AttachReview(context.Background(), "biz-1", "job-1", review))
	assert.NoError(t, mock.ExpectationsWereMet())
}
