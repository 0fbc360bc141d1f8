package models

import (
	"time"
)

// Supplier представляет поставщика товара
type Supplier struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;not null;size:100" json:"name"`
	Phone     string     `gorm:"column:phone;size:30" json:"phone"`
	Address   string     `gorm:"column:address;size:255" json:"address"`
	Debt      float64    `gorm:"column:debt;type:decimal(20,2);not null;default:0.0" json:"debt"`
	Purchases []Purchase `gorm:"foreignKey:SupplierID" json:"-"`
	CreatedAt time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
