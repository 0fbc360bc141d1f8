package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Customer представляет клиента магазина (фермера)
type Customer struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"column:name;not null;size:100" json:"name"`
	Phone       string       `gorm:"column:phone;size:30" json:"phone"`
	Village     string       `gorm:"column:village;not null;size:100;index" json:"village"`
	FarmerGroup string       `gorm:"column:farmer_group;size:100" json:"farmerGroup"`
	Address     string       `gorm:"column:address;size:255" json:"address"`
	HarvestDate *time.Time   `gorm:"column:harvest_date" json:"harvestDate,omitempty"`
	DebtLimit   float64      `gorm:"column:debt_limit;type:decimal(20,2);not null;default:0.0" json:"debtLimit"`
	CurrentDebt float64      `gorm:"column:current_debt;type:decimal(20,2);not null;default:0.0" json:"currentDebt"`
	Debts       []DebtRecord `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt   time.Time    `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate хук для валидации перед созданием
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if len(c.Name) < 2 || len(c.Name) > 100 {
		return errors.New("customer name must be between 2 and 100 characters")
	}
	if c.Village == "" {
		return errors.New("village is required")
	}
	if c.DebtLimit < 0 {
		return errors.New("debt limit must not be negative")
	}
	return nil
}
