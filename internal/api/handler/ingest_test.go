package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model/dto"
	"github.com/satyanetra/trust_go_server/internal/pkg/queue"
	"github.com/satyanetra/trust_go_server/internal/repository"
	"github.com/satyanetra/trust_go_server/internal/service"
	"github.com/satyanetra/trust_go_server/internal/testutil"
)

func setupIngestHandler(t *testing.T) (*IngestHandler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := service.NewIngestService(
		repository.NewProductRepository(db),
		repository.NewJobRepository(db),
		repository.NewJobLogRepository(db),
		queue.NewQueue(client, "test_jobs"),
	)
	return NewIngestHandler(svc), db
}

func postIngest(t *testing.T, h *IngestHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/ingest", bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Submit(c)
	return w
}

func TestIngestHandler_Submit_Success(t *testing.T) {
	h, _ := setupIngestHandler(t)

	w := postIngest(t, h, dto.IngestRequest{
		URL:      "https://example.com/item/42",
		Platform: "amazon",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.IngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ProductID)
	assert.NotEmpty(t, resp.JobID)
}

func TestIngestHandler_Submit_InvalidURL(t *testing.T) {
	h, _ := setupIngestHandler(t)

	w := postIngest(t, h, dto.IngestRequest{
		URL:      "not a url",
		Platform: "amazon",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid_url"}`, w.Body.String())
}

func TestIngestHandler_Submit_MissingFields(t *testing.T) {
	h, _ := setupIngestHandler(t)

	w := postIngest(t, h, map[string]string{"platform": "amazon"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid_url"}`, w.Body.String())
}
