package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/pkg/queue"
	"github.com/satyanetra/trust_go_server/internal/repository"
	"github.com/satyanetra/trust_go_server/internal/testutil"
)

func newIngestService(t *testing.T, db *gorm.DB) (*IngestService, *queue.Queue, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	q := queue.NewQueue(client, "test_jobs")
	svc := NewIngestService(
		repository.NewProductRepository(db),
		repository.NewJobRepository(db),
		repository.NewJobLogRepository(db),
		q,
	)
	return svc, q, mr
}

func TestIngestService_Submit_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, q, _ := newIngestService(t, db)

	resp, err := svc.Submit(context.Background(), "https://example.com/item/42", "amazon", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ProductID, "prod_"))
	assert.True(t, strings.HasPrefix(resp.JobID, "job_"))

	var product model.Product
	require.NoError(t, db.Where("id = ?", resp.ProductID).First(&product).Error)
	assert.Equal(t, "https://example.com/item/42", product.URL)
	assert.Equal(t, "Product from amazon", product.Name)

	var job model.AnalysisJob
	require.NoError(t, db.Where("id = ?", resp.JobID).First(&job).Error)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)

	var jobLog model.JobLog
	require.NoError(t, db.Where("job_id = ?", resp.JobID).First(&jobLog).Error)
	assert.Equal(t, "Queued for analysis", jobLog.Message)

	length, err := q.Length(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	msg, err := q.Pop(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, resp.JobID, msg.JobID)
	assert.Equal(t, resp.ProductID, msg.ProductID)
	assert.Equal(t, "https://example.com/item/42", msg.URL)
	assert.Equal(t, "amazon", msg.Platform)
	assert.Equal(t, "10.0.0.1", msg.ClientKey)
}

func TestIngestService_Submit_InvalidURL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _, _ := newIngestService(t, db)

	cases := []string{
		"",
		"not a url",
		"example.com/item",
		"ftp://example.com/item",
		"https://",
	}
	for _, raw := range cases {
		_, err := svc.Submit(context.Background(), raw, "amazon", "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidURL, "url: %q", raw)
	}

	var count int64
	require.NoError(t, db.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIngestService_Submit_EnqueueFailureMarksJobFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _, mr := newIngestService(t, db)
	mr.Close()

	_, err := svc.Submit(context.Background(), "https://example.com/item/42", "amazon", "10.0.0.1")
	require.Error(t, err)

	var job model.AnalysisJob
	require.NoError(t, db.Order("created_at DESC").First(&job).Error)
	assert.Equal(t, model.JobStatusFailed, job.Status)

	var logs []model.JobLog
	require.NoError(t, db.Where("job_id = ?", job.ID).Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Contains(t, logs[1].Message, "Analysis failed")
}
