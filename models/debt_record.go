package models

import (
	"time"
)

// DebtStatus представляет статус записи долга
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "PENDING"
	DebtStatusPartial DebtStatus = "PARTIAL"
	DebtStatusPaid    DebtStatus = "PAID"
)

// DebtRecord представляет запись долга клиента по одной продаже в кредит.
// Amount после создания не меняется, PaidAmount только растет,
// RemainingAmount всегда равен Amount - PaidAmount и не бывает отрицательным.
// Записи долга никогда не удаляются.
type DebtRecord struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID          uint          `gorm:"column:sale_id;not null;index" json:"saleId"`
	CustomerID      uint          `gorm:"column:customer_id;not null;index" json:"customerId"`
	Customer        Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Amount          float64       `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	PaidAmount      float64       `gorm:"column:paid_amount;type:decimal(20,2);not null;default:0.0" json:"paidAmount"`
	RemainingAmount float64       `gorm:"column:remaining_amount;type:decimal(20,2);not null" json:"remainingAmount"`
	Status          DebtStatus    `gorm:"column:status;type:varchar(10);not null;default:'PENDING'" json:"status"`
	DueDate         *time.Time    `gorm:"column:due_date;index" json:"dueDate,omitempty"`
	Payments        []DebtPayment `gorm:"foreignKey:DebtRecordID" json:"payments"`
	CreatedAt       time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (DebtRecord) TableName() string {
	return "debt_records"
}

// Recalculate пересчитывает остаток и статус по оплаченной сумме.
// Статус движется только вперед: PENDING -> PARTIAL -> PAID.
func (d *DebtRecord) Recalculate() {
	d.RemainingAmount = d.Amount - d.PaidAmount
	if d.RemainingAmount < 0 {
		d.RemainingAmount = 0
	}
	switch {
	case d.PaidAmount >= d.Amount:
		d.Status = DebtStatusPaid
	case d.PaidAmount > 0:
		d.Status = DebtStatusPartial
	default:
		d.Status = DebtStatusPending
	}
}

// IsOverdue проверяет, просрочен ли долг на указанную дату
func (d *DebtRecord) IsOverdue(asOf time.Time) bool {
	if d.Status == DebtStatusPaid || d.DueDate == nil {
		return false
	}
	return d.DueDate.Before(asOf)
}
