package services

import (
	"errors"
	"strings"
	"time"

	"agropos/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("товар не найден")

// ProductDTO представляет данные для создания или обновления товара
type ProductDTO struct {
	Barcode          string  `json:"barcode" validate:"omitempty,max=64"`
	Name             string  `json:"name" validate:"required,min=2,max=150"`
	Type             string  `json:"type" validate:"omitempty,oneof=insektisida fungisida herbisida rodentisida pupuk_organik pupuk_anorganik pupuk_cair zpt adjuvan benih lainnya"`
	ActiveIngredient string  `json:"active_ingredient" validate:"omitempty,max=150"`
	Unit             string  `json:"unit" validate:"required,max=30"`
	Stock            float64 `json:"stock" validate:"gte=0"`
	MinStock         float64 `json:"min_stock" validate:"gte=0"`
	PriceCost        float64 `json:"price_cost" validate:"gte=0"`
	PriceRetail      float64 `json:"price_retail" validate:"gte=0"`
	PriceWholesale   float64 `json:"price_wholesale" validate:"gte=0"`
	WholesaleMinQty  float64 `json:"wholesale_min_qty" validate:"gte=0"`
}

// ProductService предоставляет методы для работы с каталогом товаров
type ProductService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewProductService создает новый экземпляр ProductService
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:        db,
		validator: validator.New(),
	}
}

// Create создает новый товар
func (s *ProductService) Create(dto ProductDTO) (*models.Product, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	productType := models.ProductType(dto.Type)
	if productType == "" {
		productType = models.ProductTypeLainnya
	}

	product := &models.Product{
		Barcode:          dto.Barcode,
		Name:             dto.Name,
		Type:             productType,
		ActiveIngredient: dto.ActiveIngredient,
		Unit:             dto.Unit,
		Stock:            dto.Stock,
		MinStock:         dto.MinStock,
		PriceCost:        dto.PriceCost,
		PriceRetail:      dto.PriceRetail,
		PriceWholesale:   dto.PriceWholesale,
		WholesaleMinQty:  dto.WholesaleMinQty,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, errors.New("не удалось создать товар")
	}

	return product, nil
}

// Update обновляет существующий товар
func (s *ProductService) Update(id uint, dto ProductDTO) (*models.Product, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.New("ошибка при поиске товара")
	}

	product.Barcode = dto.Barcode
	product.Name = dto.Name
	if dto.Type != "" {
		product.Type = models.ProductType(dto.Type)
	}
	product.ActiveIngredient = dto.ActiveIngredient
	product.Unit = dto.Unit
	product.Stock = dto.Stock
	product.MinStock = dto.MinStock
	product.PriceCost = dto.PriceCost
	product.PriceRetail = dto.PriceRetail
	product.PriceWholesale = dto.PriceWholesale
	product.WholesaleMinQty = dto.WholesaleMinQty
	product.UpdatedAt = time.Now()

	if err := s.db.Save(&product).Error; err != nil {
		return nil, errors.New("ошибка при обновлении товара")
	}

	return &product, nil
}

// Delete удаляет товар
func (s *ProductService) Delete(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return errors.New("ошибка при удалении товара")
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetByID возвращает товар по ID
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.New("ошибка при поиске товара")
	}
	return &product, nil
}

// GetByBarcode возвращает товар по штрихкоду
func (s *ProductService) GetByBarcode(barcode string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("barcode = ? AND barcode <> ''", barcode).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.New("ошибка при поиске товара по штрихкоду")
	}
	return &product, nil
}

// GetAll возвращает все товары
func (s *ProductService) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id DESC").Find(&products).Error; err != nil {
		return nil, errors.New("ошибка при получении товаров")
	}
	return products, nil
}

// Search ищет товары по названию, действующему веществу или штрихкоду
func (s *ProductService) Search(query string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var products []models.Product
	if err := s.db.Where(
		"LOWER(name) LIKE ? OR LOWER(active_ingredient) LIKE ? OR barcode LIKE ?",
		pattern, pattern, "%"+query+"%",
	).Order("name ASC").Find(&products).Error; err != nil {
		return nil, errors.New("ошибка при поиске товаров")
	}
	return products, nil
}

// GetLowStock возвращает товары с остатком не выше минимального
func (s *ProductService) GetLowStock() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("stock <= min_stock").Order("stock ASC").Find(&products).Error; err != nil {
		return nil, errors.New("ошибка при получении товаров с низким остатком")
	}
	return products, nil
}

// AdjustStock изменяет остаток товара на дельту, не опускаясь ниже нуля
func (s *ProductService) AdjustStock(id uint, delta float64) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.New("ошибка при поиске товара")
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, errors.New("остаток не может быть отрицательным")
	}

	product.Stock = newStock
	product.UpdatedAt = time.Now()

	if err := s.db.Save(&product).Error; err != nil {
		return nil, errors.New("ошибка при обновлении остатка")
	}

	return &product, nil
}

// validateDTO валидирует DTO и возвращает ошибки валидации
func (s *ProductService) validateDTO(dto interface{}) error {
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "min":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать минимум "+e.Param()+" символов")
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
			case "gte":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше или равно "+e.Param())
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}
	return nil
}
