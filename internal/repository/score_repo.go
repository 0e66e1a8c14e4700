package repository

import (
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
)

type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Create(score *model.Score) error {
	return r.db.Create(score).Error
}

// GetLatestByProductID 返回商品最新一次分析的结果
// 重新分析会插入新行，历史行保留，读取始终以 created_at 最新为准
func (r *ScoreRepository) GetLatestByProductID(productID string) (*model.Score, error) {
	var score model.Score
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) CountByProductID(productID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Score{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
