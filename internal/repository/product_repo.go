package repository

import (
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) GetByID(id string) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateName 商品创建后只有名称允许修改
func (r *ProductRepository) UpdateName(id, name string) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).Update("name", name).Error
}
