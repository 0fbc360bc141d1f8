package models

import (
	"time"
)

// PurchaseStatus представляет статус оплаты закупки
type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "PENDING"
	PurchaseStatusPartial PurchaseStatus = "PARTIAL"
	PurchaseStatusPaid    PurchaseStatus = "PAID"
)

// Purchase представляет закупку у поставщика
type Purchase struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID  uint           `gorm:"column:supplier_id;not null;index" json:"supplierId"`
	Supplier    Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items       []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
	Total       float64        `gorm:"column:total;type:decimal(20,2);not null" json:"total"`
	AmountPaid  float64        `gorm:"column:amount_paid;type:decimal(20,2);not null;default:0.0" json:"amountPaid"`
	PaymentType PaymentType    `gorm:"column:payment_type;type:varchar(10);not null;default:'CASH'" json:"paymentType"`
	Status      PurchaseStatus `gorm:"column:status;type:varchar(10);not null;default:'PENDING'" json:"status"`
	DueDate     *time.Time     `gorm:"column:due_date" json:"dueDate,omitempty"`
	Notes       string         `gorm:"column:notes;size:255" json:"notes"`
	CreatedAt   time.Time      `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// Outstanding возвращает неоплаченный остаток закупки
func (p *Purchase) Outstanding() float64 {
	remaining := p.Total - p.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RecalculateStatus пересчитывает статус по оплаченной сумме
func (p *Purchase) RecalculateStatus() {
	switch {
	case p.AmountPaid >= p.Total:
		p.Status = PurchaseStatusPaid
	case p.AmountPaid > 0:
		p.Status = PurchaseStatusPartial
	default:
		p.Status = PurchaseStatusPending
	}
}

// PurchaseItem представляет позицию закупки
type PurchaseItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID  uint    `gorm:"column:purchase_id;not null;index" json:"purchaseId"`
	ProductID   uint    `gorm:"column:product_id;not null" json:"productId"`
	ProductName string  `gorm:"column:product_name;not null;size:150" json:"productName"`
	Unit        string  `gorm:"column:unit;not null;size:30" json:"unit"`
	Quantity    float64 `gorm:"column:quantity;not null" json:"quantity"`
	UnitCost    float64 `gorm:"column:unit_cost;type:decimal(20,2);not null" json:"unitCost"`
	Subtotal    float64 `gorm:"column:subtotal;type:decimal(20,2);not null" json:"subtotal"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}
