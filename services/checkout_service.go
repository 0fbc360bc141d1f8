package services

import (
	"errors"
	"strings"
	"time"

	"agropos/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("продажа не найдена")
	ErrInsufficientStock = errors.New("недостаточно товара на складе")
	ErrCustomerRequired  = errors.New("для продажи в кредит требуется клиент")
	ErrInsufficientPaid  = errors.New("внесенная сумма меньше итога чека")
)

// SaleItemDTO представляет позицию чека в запросе
type SaleItemDTO struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	PriceType string  `json:"price_type" validate:"omitempty,oneof=RETAIL WHOLESALE"`
}

// CreateSaleDTO представляет данные для создания продажи
type CreateSaleDTO struct {
	CustomerID  *uint         `json:"customer_id,omitempty"`
	Items       []SaleItemDTO `json:"items" validate:"required,min=1,dive"`
	Discount    float64       `json:"discount" validate:"gte=0"`
	PaymentType string        `json:"payment_type" validate:"required,oneof=CASH DEBT"`
	AmountPaid  float64       `json:"amount_paid" validate:"gte=0"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Notes       string        `json:"notes" validate:"omitempty,max=255"`
}

// CheckoutService проводит продажи: списывает остатки, считает итог чека
// и для продаж в кредит создает запись долга через LedgerService
type CheckoutService struct {
	db        *gorm.DB
	validator *validator.Validate
	ledger    *LedgerService
}

// NewCheckoutService создает новый экземпляр CheckoutService
func NewCheckoutService(db *gorm.DB, ledger *LedgerService) *CheckoutService {
	return &CheckoutService{
		db:        db,
		validator: validator.New(),
		ledger:    ledger,
	}
}

// resolveUnitPrice выбирает ценовой уровень позиции.
// Явно запрошенный уровень уважается; иначе оптовая цена включается,
// когда количество достигает оптового минимума.
func (s *CheckoutService) resolveUnitPrice(product *models.Product, item SaleItemDTO) (models.PriceType, float64) {
	switch models.PriceType(item.PriceType) {
	case models.PriceTypeWholesale:
		return models.PriceTypeWholesale, product.PriceWholesale
	case models.PriceTypeRetail:
		return models.PriceTypeRetail, product.PriceRetail
	}
	if product.WholesaleMinQty > 0 && item.Quantity >= product.WholesaleMinQty {
		return models.PriceTypeWholesale, product.PriceWholesale
	}
	return models.PriceTypeRetail, product.PriceRetail
}

// CreateSale проводит продажу
func (s *CheckoutService) CreateSale(dto CreateSaleDTO) (*models.Sale, error) {
	// Валидируем DTO
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	paymentType := models.PaymentType(dto.PaymentType)

	// Для продажи в кредит обязателен клиент
	if paymentType == models.PaymentTypeDebt && dto.CustomerID == nil {
		return nil, ErrCustomerRequired
	}

	// Продажа в кредит меняет долг клиента, поэтому сериализуется
	// тем же мьютексом, что и платежи по долгам
	if paymentType == models.PaymentTypeDebt {
		s.ledger.Mutex().Lock()
		defer s.ledger.Mutex().Unlock()
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Собираем позиции чека и списываем остатки
	var (
		items    []models.SaleItem
		subtotal float64
	)
	for _, item := range dto.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, errors.New("ошибка при поиске товара")
		}

		// Проверяем остаток
		if product.Stock < item.Quantity {
			tx.Rollback()
			return nil, ErrInsufficientStock
		}

		priceType, unitPrice := s.resolveUnitPrice(&product, item)
		lineSubtotal := unitPrice * item.Quantity

		items = append(items, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    item.Quantity,
			PriceType:   priceType,
			UnitPrice:   unitPrice,
			Subtotal:    lineSubtotal,
		})
		subtotal += lineSubtotal

		// Списываем остаток
		product.Stock -= item.Quantity
		product.UpdatedAt = time.Now()
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при списании остатка")
		}
	}

	// Считаем итог чека
	total := subtotal - dto.Discount
	if total < 0 {
		total = 0
	}

	sale := &models.Sale{
		Number:      uuid.New().String(),
		CustomerID:  dto.CustomerID,
		Subtotal:    subtotal,
		Discount:    dto.Discount,
		Total:       total,
		PaymentType: paymentType,
		DueDate:     dto.DueDate,
		Notes:       dto.Notes,
	}

	switch paymentType {
	case models.PaymentTypeCash:
		// Наличная оплата: внесенная сумма покрывает итог, считаем сдачу
		if dto.AmountPaid < total {
			tx.Rollback()
			return nil, ErrInsufficientPaid
		}
		sale.AmountPaid = dto.AmountPaid
		sale.Change = dto.AmountPaid - total
	case models.PaymentTypeDebt:
		sale.AmountPaid = 0
		sale.Change = 0
	}

	// Сохраняем чек
	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при сохранении продажи")
	}

	// Сохраняем позиции чека
	for i := range items {
		items[i].SaleID = sale.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при сохранении позиции чека")
		}
	}
	sale.Items = items

	// Для продажи в кредит создаем запись долга на полный итог чека.
	// Лимит долга клиента проверяет леджер; при превышении
	// откатывается вся продажа вместе со списанием остатков.
	if paymentType == models.PaymentTypeDebt {
		_, err := s.ledger.RecordDebtTx(tx, RecordDebtDTO{
			SaleID:     sale.ID,
			CustomerID: *dto.CustomerID,
			Amount:     total,
			DueDate:    dto.DueDate,
		})
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	return sale, nil
}

// GetSaleByID возвращает продажу по ID
func (s *CheckoutService) GetSaleByID(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Items").Preload("Customer").First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, errors.New("ошибка при поиске продажи")
	}
	return &sale, nil
}

// GetSales возвращает все продажи
func (s *CheckoutService) GetSales() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, errors.New("ошибка при получении продаж")
	}
	return sales, nil
}

// GetTodaySales возвращает продажи за текущие сутки
func (s *CheckoutService) GetTodaySales() ([]models.Sale, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var sales []models.Sale
	if err := s.db.Preload("Items").
		Where("created_at >= ?", startOfDay).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, errors.New("ошибка при получении продаж за день")
	}
	return sales, nil
}

// validateDTO валидирует DTO и возвращает ошибки валидации
func (s *CheckoutService) validateDTO(dto interface{}) error {
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gt":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
			case "gte":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше или равно "+e.Param())
			case "min":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать минимум "+e.Param()+" элементов")
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}
	return nil
}
