package model

import (
	"time"
)

type Product struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	URL       string    `gorm:"size:1024;not null" json:"url"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
