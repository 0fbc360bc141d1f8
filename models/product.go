package models

import (
	"time"
)

// ProductType представляет категорию товара
type ProductType string

const (
	ProductTypeInsektisida    ProductType = "insektisida"
	ProductTypeFungisida      ProductType = "fungisida"
	ProductTypeHerbisida      ProductType = "herbisida"
	ProductTypeRodentisida    ProductType = "rodentisida"
	ProductTypePupukOrganik   ProductType = "pupuk_organik"
	ProductTypePupukAnorganik ProductType = "pupuk_anorganik"
	ProductTypePupukCair      ProductType = "pupuk_cair"
	ProductTypeZPT            ProductType = "zpt"
	ProductTypeAdjuvan        ProductType = "adjuvan"
	ProductTypeBenih          ProductType = "benih"
	ProductTypeLainnya        ProductType = "lainnya"
)

// Product представляет товар (удобрение или пестицид)
type Product struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Barcode          string      `gorm:"column:barcode;size:64;index" json:"barcode"`
	Name             string      `gorm:"column:name;not null;size:150;index" json:"name"`
	Type             ProductType `gorm:"column:type;type:varchar(30);not null;default:'lainnya'" json:"type"`
	ActiveIngredient string      `gorm:"column:active_ingredient;size:150" json:"activeIngredient"`
	Unit             string      `gorm:"column:unit;not null;size:30" json:"unit"`
	Stock            float64     `gorm:"column:stock;not null;default:0" json:"stock"`
	MinStock         float64     `gorm:"column:min_stock;not null;default:0" json:"minStock"`
	PriceCost        float64     `gorm:"column:price_cost;type:decimal(20,2);not null;default:0.0" json:"priceCost"`
	PriceRetail      float64     `gorm:"column:price_retail;type:decimal(20,2);not null;default:0.0" json:"priceRetail"`
	PriceWholesale   float64     `gorm:"column:price_wholesale;type:decimal(20,2);not null;default:0.0" json:"priceWholesale"`
	WholesaleMinQty  float64     `gorm:"column:wholesale_min_qty;not null;default:0" json:"wholesaleMinQty"`
	CreatedAt        time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// IsLowStock проверяет, достиг ли остаток минимального уровня
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
