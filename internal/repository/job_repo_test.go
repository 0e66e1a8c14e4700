package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/pkg/ids"
	"github.com/satyanetra/trust_go_server/internal/testutil"
)

func TestJobRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewJobRepository(db)
	product := testutil.TestProduct(t, db)

	job := &model.AnalysisJob{
		ID:        ids.JobID(),
		ProductID: product.ID,
		Status:    model.JobStatusPending,
	}

	err := repo.Create(job)
	require.NoError(t, err)
	assert.NotZero(t, job.CreatedAt)
}

func TestJobRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewJobRepository(db)
	product := testutil.TestProduct(t, db)
	created := testutil.TestJob(t, db, product.ID)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, model.JobStatusPending, found.Status)
}

func TestJobRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewJobRepository(db)

	_, err := repo.GetByID("job_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestJobRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewJobRepository(db)
	product := testutil.TestProduct(t, db)
	job := testutil.TestJob(t, db, product.ID)

	job.Status = model.JobStatusProcessing
	job.Progress = 55
	require.NoError(t, repo.Update(job))

	found, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, found.Status)
	assert.Equal(t, 55, found.Progress)
}

func TestJobRepository_ListTerminalBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewJobRepository(db)
	product := testutil.TestProduct(t, db)

	old := testutil.TestJob(t, db, product.ID, testutil.WithStatus(model.JobStatusCompleted))
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	// 最近的终态任务和还在跑的任务都不应入选
	testutil.TestJob(t, db, product.ID, testutil.WithStatus(model.JobStatusCompleted))
	running := testutil.TestJob(t, db, product.ID, testutil.WithStatus(model.JobStatusProcessing))
	require.NoError(t, db.Model(running).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	jobs, err := repo.ListTerminalBefore(time.Now().Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, old.ID, jobs[0].ID)
}
