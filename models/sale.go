package models

import (
	"time"
)

// PaymentType представляет способ оплаты продажи
type PaymentType string

const (
	PaymentTypeCash PaymentType = "CASH"
	PaymentTypeDebt PaymentType = "DEBT"
)

// PriceType представляет ценовой уровень позиции чека
type PriceType string

const (
	PriceTypeRetail    PriceType = "RETAIL"
	PriceTypeWholesale PriceType = "WHOLESALE"
)

// Sale представляет продажу (чек)
type Sale struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Number      string      `gorm:"column:number;unique;not null;size:40" json:"number"`
	CustomerID  *uint       `gorm:"column:customer_id;index" json:"customerId,omitempty"`
	Customer    *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items       []SaleItem  `gorm:"foreignKey:SaleID" json:"items"`
	Subtotal    float64     `gorm:"column:subtotal;type:decimal(20,2);not null" json:"subtotal"`
	Discount    float64     `gorm:"column:discount;type:decimal(20,2);not null;default:0.0" json:"discount"`
	Total       float64     `gorm:"column:total;type:decimal(20,2);not null" json:"total"`
	PaymentType PaymentType `gorm:"column:payment_type;type:varchar(10);not null;default:'CASH'" json:"paymentType"`
	AmountPaid  float64     `gorm:"column:amount_paid;type:decimal(20,2);not null;default:0.0" json:"amountPaid"`
	Change      float64     `gorm:"column:change_amount;type:decimal(20,2);not null;default:0.0" json:"change"`
	DueDate     *time.Time  `gorm:"column:due_date" json:"dueDate,omitempty"`
	Notes       string      `gorm:"column:notes;size:255" json:"notes"`
	CreatedAt   time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleItem представляет позицию чека
type SaleItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID      uint      `gorm:"column:sale_id;not null;index" json:"saleId"`
	ProductID   uint      `gorm:"column:product_id;not null" json:"productId"`
	ProductName string    `gorm:"column:product_name;not null;size:150" json:"productName"`
	Unit        string    `gorm:"column:unit;not null;size:30" json:"unit"`
	Quantity    float64   `gorm:"column:quantity;not null" json:"quantity"`
	PriceType   PriceType `gorm:"column:price_type;type:varchar(10);not null;default:'RETAIL'" json:"priceType"`
	UnitPrice   float64   `gorm:"column:unit_price;type:decimal(20,2);not null" json:"unitPrice"`
	Subtotal    float64   `gorm:"column:subtotal;type:decimal(20,2);not null" json:"subtotal"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}
