package services

import (
	"errors"
	"strings"
	"time"

	"agropos/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound   = errors.New("поставщик не найден")
	ErrPurchaseNotFound   = errors.New("закупка не найдена")
	ErrPurchaseNotPending = errors.New("закупка уже частично или полностью оплачена")
)

// PurchaseItemDTO представляет позицию закупки в запросе
type PurchaseItemDTO struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost" validate:"required,gt=0"`
}

// CreatePurchaseDTO представляет данные для создания закупки
type CreatePurchaseDTO struct {
	SupplierID  uint              `json:"supplier_id" validate:"required"`
	Items       []PurchaseItemDTO `json:"items" validate:"required,min=1,dive"`
	PaymentType string            `json:"payment_type" validate:"required,oneof=CASH DEBT"`
	AmountPaid  float64           `json:"amount_paid" validate:"gte=0"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Notes       string            `json:"notes" validate:"omitempty,max=255"`
}

// PurchasePaymentDTO представляет платеж поставщику по закупке
type PurchasePaymentDTO struct {
	PurchaseID uint    `json:"-" validate:"required"`
	Amount     float64 `json:"amount"`
}

// PurchaseService ведет закупки у поставщиков и совокупный долг перед ними
type PurchaseService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewPurchaseService создает новый экземпляр PurchaseService
func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{
		db:        db,
		validator: validator.New(),
	}
}

// Create создает закупку. Приход товара увеличивает остатки,
// неоплаченная часть закупки увеличивает долг перед поставщиком.
func (s *PurchaseService) Create(dto CreatePurchaseDTO) (*models.Purchase, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Проверяем существование поставщика
	var supplier models.Supplier
	if err := tx.First(&supplier, dto.SupplierID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, errors.New("ошибка при поиске поставщика")
	}

	// Собираем позиции и приходуем товар
	var (
		items []models.PurchaseItem
		total float64
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

		lineSubtotal := item.UnitCost * item.Quantity
		items = append(items, models.PurchaseItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			Subtotal:    lineSubtotal,
		})
		total += lineSubtotal

		// Приходуем остаток и обновляем закупочную цену
		product.Stock += item.Quantity
		product.PriceCost = item.UnitCost
		product.UpdatedAt = time.Now()
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при оприходовании товара")
		}
	}

	amountPaid := dto.AmountPaid
	if amountPaid > total {
		amountPaid = total
	}
	if models.PaymentType(dto.PaymentType) == models.PaymentTypeCash {
		amountPaid = total
	}

	purchase := &models.Purchase{
		SupplierID:  dto.SupplierID,
		Total:       total,
		AmountPaid:  amountPaid,
		PaymentType: models.PaymentType(dto.PaymentType),
		DueDate:     dto.DueDate,
		Notes:       dto.Notes,
	}
	purchase.RecalculateStatus()

	// Сохраняем закупку
	if err := tx.Create(purchase).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при сохранении закупки")
	}

	for i := range items {
		items[i].PurchaseID = purchase.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при сохранении позиции закупки")
		}
	}
	purchase.Items = items

	// Неоплаченная часть увеличивает долг перед поставщиком
	if outstanding := purchase.Outstanding(); outstanding > 0 {
		supplier.Debt += outstanding
		supplier.UpdatedAt = time.Now()
		if err := tx.Save(&supplier).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при обновлении долга поставщику")
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	return purchase, nil
}

// RegisterPayment регистрирует платеж поставщику по закупке
func (s *PurchaseService) RegisterPayment(dto PurchasePaymentDTO) (*models.Purchase, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Получаем закупку
	var purchase models.Purchase
	if err := tx.Preload("Items").First(&purchase, dto.PurchaseID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, errors.New("ошибка при поиске закупки")
	}

	// Платеж должен быть положительным и не превышать остаток
	if dto.Amount <= 0 || dto.Amount > purchase.Outstanding() {
		tx.Rollback()
		return nil, ErrInvalidAmount
	}

	purchase.AmountPaid += dto.Amount
	purchase.RecalculateStatus()
	purchase.UpdatedAt = time.Now()

	if err := tx.Save(&purchase).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении закупки")
	}

	// Уменьшаем долг перед поставщиком, не опускаясь ниже нуля
	var supplier models.Supplier
	if err := tx.First(&supplier, purchase.SupplierID).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при поиске поставщика")
	}

	supplier.Debt -= dto.Amount
	if supplier.Debt < 0 {
		supplier.Debt = 0
	}
	supplier.UpdatedAt = time.Now()

	if err := tx.Save(&supplier).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении долга поставщику")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	return &purchase, nil
}

// GetAll возвращает все закупки
func (s *PurchaseService) GetAll() ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.db.Preload("Items").Preload("Supplier").
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, errors.New("ошибка при получении закупок")
	}
	return purchases, nil
}

// GetByID возвращает закупку по ID
func (s *PurchaseService) GetByID(id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.Preload("Items").Preload("Supplier").First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, errors.New("ошибка при поиске закупки")
	}
	return &purchase, nil
}

// Delete удаляет закупку. Удалять можно только неоплаченные закупки,
// долг перед поставщиком при этом уменьшается на остаток.
func (s *PurchaseService) Delete(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	var purchase models.Purchase
	if err := tx.First(&purchase, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPurchaseNotFound
		}
		return errors.New("ошибка при поиске закупки")
	}

	if purchase.Status != models.PurchaseStatusPending || purchase.AmountPaid > 0 {
		tx.Rollback()
		return ErrPurchaseNotPending
	}

	var supplier models.Supplier
	if err := tx.First(&supplier, purchase.SupplierID).Error; err == nil {
		supplier.Debt -= purchase.Outstanding()
		if supplier.Debt < 0 {
			supplier.Debt = 0
		}
		supplier.UpdatedAt = time.Now()
		if err := tx.Save(&supplier).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при обновлении долга поставщику")
		}
	}

	if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&models.PurchaseItem{}).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при удалении позиций закупки")
	}

	if err := tx.Delete(&purchase).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при удалении закупки")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}
	return nil
}

// SupplierDTO представляет данные для создания или обновления поставщика
type SupplierDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// CreateSupplier создает нового поставщика
func (s *PurchaseService) CreateSupplier(dto SupplierDTO) (*models.Supplier, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		Name:    dto.Name,
		Phone:   dto.Phone,
		Address: dto.Address,
	}
	if err := s.db.Create(supplier).Error; err != nil {
		return nil, errors.New("не удалось создать поставщика")
	}
	return supplier, nil
}

// UpdateSupplier обновляет данные поставщика
func (s *PurchaseService) UpdateSupplier(id uint, dto SupplierDTO) (*models.Supplier, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	var supplier models.Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, errors.New("ошибка при поиске поставщика")
	}

	supplier.Name = dto.Name
	supplier.Phone = dto.Phone
	supplier.Address = dto.Address
	supplier.UpdatedAt = time.Now()

	if err := s.db.Save(&supplier).Error; err != nil {
		return nil, errors.New("ошибка при обновлении поставщика")
	}
	return &supplier, nil
}

// GetSuppliers возвращает всех поставщиков
func (s *PurchaseService) GetSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, errors.New("ошибка при получении поставщиков")
	}
	return suppliers, nil
}

// validateDTO валидирует DTO и возвращает ошибки валидации
func (s *PurchaseService) validateDTO(dto interface{}) error {
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
