package model

import (
	"time"
)

// Score 一次完整分析的聚合结果，三个子评分按 JSON 文本存储
// 同一个商品可以有多条历史记录，读取时取 created_at 最新的一条
type Score struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID         string    `gorm:"size:64;not null;index" json:"product_id"`
	OverallScore      int       `json:"overall_score"`
	ReviewAnalysis    string    `gorm:"type:text" json:"review_analysis"`
	ImageVerification string    `gorm:"type:text" json:"image_verification"`
	SellerCredibility string    `gorm:"type:text" json:"seller_credibility"`
	ProductDetails    string    `gorm:"type:text" json:"product_details"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

func (Score) TableName() string {
	return "scores"
}
