package models

import (
	"time"
)

// DebtPayment представляет платеж по записи долга.
// После создания платеж не изменяется и не отзывается.
type DebtPayment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DebtRecordID uint      `gorm:"column:debt_record_id;not null;index" json:"debtRecordId"`
	Amount       float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	PaidAt       time.Time `gorm:"column:paid_at;not null;default:CURRENT_TIMESTAMP" json:"paidAt"`
	Note         string    `gorm:"column:note;size:255" json:"note"`
	CreatedAt    time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (DebtPayment) TableName() string {
	return "debt_payments"
}
