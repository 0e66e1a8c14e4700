package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestSuccess(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Success(c, gin.H{"product_id": "prod_1"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product_id":"prod_1"}`, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		handler  gin.HandlerFunc
		status   int
		wantBody string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, CodeInvalidURL) },
			http.StatusBadRequest, `{"error":"invalid_url"}`},
		{"rate limited", func(c *gin.Context) { TooManyRequests(c) },
			http.StatusTooManyRequests, `{"error":"rate_limit_exceeded"}`},
		{"not found", func(c *gin.Context) { NotFound(c, CodeJobNotFound) },
			http.StatusNotFound, `{"error":"job_not_found"}`},
		{"conflict", func(c *gin.Context) { Conflict(c, CodeAnalysisNotReady) },
			http.StatusConflict, `{"error":"analysis_not_ready"}`},
		{"server error", func(c *gin.Context) { ServerError(c) },
			http.StatusInternalServerError, `{"error":"internal_error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(tt.handler)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
