package dto

import (
	"encoding/json"
)

type StatusResponse struct {
	Status   string   `json:"status"`
	Progress int      `json:"progress"`
	Logs     []string `json:"logs"`
}

type ScoreResponse struct {
	ProductID         string          `json:"productId"`
	OverallScore      int             `json:"overallScore"`
	ReviewAnalysis    json.RawMessage `json:"reviewAnalysis"`
	ImageVerification json.RawMessage `json:"imageVerification"`
	SellerCredibility json.RawMessage `json:"sellerCredibility"`
	ProductDetails    json.RawMessage `json:"productDetails"`
	Reasons           []string        `json:"reasons"`
}
