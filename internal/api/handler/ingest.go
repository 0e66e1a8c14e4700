package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/satyanetra/trust_go_server/internal/model/dto"
	"github.com/satyanetra/trust_go_server/internal/pkg/response"
	"github.com/satyanetra/trust_go_server/internal/service"
)

type IngestHandler struct {
	ingestService *service.IngestService
}

func NewIngestHandler(ingestService *service.IngestService) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
	}
}

// Submit 提交商品链接，触发后台分析
// POST /api/ingest
func (h *IngestHandler) Submit(c *gin.Context) {
	var req dto.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidURL)
		return
	}

	resp, err := h.ingestService.Submit(c.Request.Context(), req.URL, req.Platform, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			response.BadRequest(c, response.CodeInvalidURL)
			return
		}
		log.Printf("Failed to submit product: %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, resp)
}
