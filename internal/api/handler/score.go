package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/satyanetra/trust_go_server/internal/pkg/response"
	"github.com/satyanetra/trust_go_server/internal/service"
)

type ScoreHandler struct {
	scoreService *service.ScoreService
}

func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// Status 查询任务状态与日志
// GET /api/score/status/:jobId
func (h *ScoreHandler) Status(c *gin.Context) {
	jobID := c.Param("jobId")

	resp, err := h.scoreService.Status(jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFound(c, response.CodeJobNotFound)
			return
		}
		log.Printf("Failed to get status for job %s: %v", jobID, err)
		response.ServerError(c)
		return
	}

	response.Success(c, resp)
}

// Score 查询商品最新评分
// GET /api/score/:productId
func (h *ScoreHandler) Score(c *gin.Context) {
	productID := c.Param("productId")

	resp, err := h.scoreService.Score(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrScoreNotReady) {
			response.Conflict(c, response.CodeAnalysisNotReady)
			return
		}
		log.Printf("Failed to get score for product %s: %v", productID, err)
		response.ServerError(c)
		return
	}

	response.Success(c, resp)
}
