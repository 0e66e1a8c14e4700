package dto

type IngestRequest struct {
	URL      string `json:"url" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

type IngestResponse struct {
	ProductID string `json:"productId"`
	JobID     string `json:"jobId"`
}
