package services

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"agropos/models"
	"agropos/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Типизированные ошибки леджера
var (
	ErrCustomerNotFound  = errors.New("клиент не найден")
	ErrDebtNotFound      = errors.New("запись долга не найдена")
	ErrInvalidAmount     = errors.New("недопустимая сумма платежа")
	ErrDebtLimitExceeded = errors.New("превышен лимит долга клиента")
)

// RecordDebtDTO представляет данные для создания записи долга
type RecordDebtDTO struct {
	SaleID     uint       `json:"sale_id" validate:"required"`
	CustomerID uint       `json:"customer_id" validate:"required"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// ApplyPaymentDTO представляет данные платежа по долгу
type ApplyPaymentDTO struct {
	DebtID uint    `json:"-" validate:"required"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note" validate:"omitempty,max=255"`
}

// VillageDebtDTO представляет сумму непогашенного долга по деревне
type VillageDebtDTO struct {
	Village string  `json:"village"`
	Total   float64 `json:"total"`
}

// LedgerService ведет учет долгов клиентов. Сервис поддерживает инвариант:
// CurrentDebt клиента всегда равен сумме RemainingAmount его непогашенных
// записей долга. Все мутации сериализуются через общий мьютекс.
type LedgerService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	mu        *sync.Mutex
}

// NewLedgerService создает новый экземпляр LedgerService.
// Мьютекс разделяется с CheckoutService, чтобы продажи в кредит
// не пересекались с платежами по долгам.
func NewLedgerService(db *gorm.DB, email *EmailService, mu *sync.Mutex) *LedgerService {
	return &LedgerService{
		db:        db,
		validator: validator.New(),
		email:     email,
		mu:        mu,
	}
}

// Mutex возвращает мьютекс, сериализующий мутации леджера
func (s *LedgerService) Mutex() *sync.Mutex {
	return s.mu
}

// RecordDebt создает запись долга по продаже в кредит
func (s *LedgerService) RecordDebt(dto RecordDebtDTO) (*models.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	record, err := s.RecordDebtTx(tx, dto)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	return record, nil
}

// RecordDebtTx создает запись долга внутри внешней транзакции.
// Вызывающий обязан держать мьютекс леджера.
func (s *LedgerService) RecordDebtTx(tx *gorm.DB, dto RecordDebtDTO) (*models.DebtRecord, error) {
	// Валидируем DTO
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	// Получаем клиента
	var customer models.Customer
	if err := tx.First(&customer, dto.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.New("ошибка при поиске клиента")
	}

	// Проверяем лимит долга: совокупный долг не должен превысить потолок
	if customer.CurrentDebt+dto.Amount > customer.DebtLimit {
		return nil, ErrDebtLimitExceeded
	}

	// Создаем запись долга
	record := &models.DebtRecord{
		SaleID:     dto.SaleID,
		CustomerID: dto.CustomerID,
		Amount:     dto.Amount,
		PaidAmount: 0,
		DueDate:    dto.DueDate,
	}
	record.Recalculate()

	// Сохраняем запись
	if err := tx.Create(record).Error; err != nil {
		return nil, errors.New("ошибка при создании записи долга")
	}

	// Увеличиваем совокупный долг клиента
	customer.CurrentDebt += dto.Amount
	customer.UpdatedAt = time.Now()

	if err := tx.Save(&customer).Error; err != nil {
		return nil, errors.New("ошибка при обновлении долга клиента")
	}

	utils.DebtsRecordedTotal.Inc()

	return record, nil
}

// ApplyPayment применяет платеж к записи долга
func (s *LedgerService) ApplyPayment(dto ApplyPaymentDTO) (*models.DebtRecord, error) {
	// Валидируем DTO
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Получаем запись долга
	var record models.DebtRecord
	if err := tx.Preload("Payments").First(&record, dto.DebtID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, errors.New("ошибка при поиске записи долга")
	}

	// Проверяем сумму: платеж должен быть положительным и не превышать остаток.
	// Отклоненный платеж не меняет состояние.
	if dto.Amount <= 0 || dto.Amount > record.RemainingAmount {
		tx.Rollback()
		return nil, ErrInvalidAmount
	}

	// Создаем платеж
	payment := models.DebtPayment{
		DebtRecordID: record.ID,
		Amount:       dto.Amount,
		PaidAt:       time.Now(),
		Note:         dto.Note,
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при сохранении платежа")
	}

	// Обновляем запись долга
	record.PaidAmount += dto.Amount
	record.Recalculate()
	record.UpdatedAt = time.Now()

	if err := tx.Save(&record).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении записи долга")
	}

	// Уменьшаем совокупный долг клиента, не опускаясь ниже нуля
	var customer models.Customer
	if err := tx.First(&customer, record.CustomerID).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при поиске клиента")
	}

	customer.CurrentDebt -= dto.Amount
	if customer.CurrentDebt < 0 {
		customer.CurrentDebt = 0
	}
	customer.UpdatedAt = time.Now()

	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении долга клиента")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	record.Payments = append(record.Payments, payment)
	utils.DebtPaymentsTotal.Inc()

	// Если долг полностью погашен, отправляем уведомление
	if record.Status == models.DebtStatusPaid && s.email != nil {
		if err := s.email.SendDebtSettledNotification(customer.Name, record.ID, record.Amount); err != nil {
			// Логируем ошибку, но платеж уже применен
			log.Printf("Ошибка при отправке уведомления о погашении долга: %v", err)
		}
	}

	return &record, nil
}

// GetByID возвращает запись долга по ID
func (s *LedgerService) GetByID(id uint) (*models.DebtRecord, error) {
	var record models.DebtRecord
	if err := s.db.Preload("Payments").Preload("Customer").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, errors.New("ошибка при поиске записи долга")
	}
	return &record, nil
}

// GetAll возвращает все записи долга
func (s *LedgerService) GetAll() ([]models.DebtRecord, error) {
	var records []models.DebtRecord
	if err := s.db.Preload("Payments").Preload("Customer").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, errors.New("ошибка при получении записей долга")
	}
	return records, nil
}

// GetByCustomer возвращает все записи долга клиента
func (s *LedgerService) GetByCustomer(customerID uint) ([]models.DebtRecord, error) {
	var records []models.DebtRecord
	if err := s.db.Where("customer_id = ?", customerID).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("debt_payments.paid_at ASC")
		}).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, errors.New("ошибка при получении записей долга клиента")
	}
	return records, nil
}

// ListOverdue возвращает непогашенные записи долга, просроченные на указанную дату
func (s *LedgerService) ListOverdue(asOf time.Time) ([]models.DebtRecord, error) {
	var records []models.DebtRecord
	if err := s.db.Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", models.DebtStatusPaid, asOf).
		Preload("Customer").
		Order("due_date ASC").
		Find(&records).Error; err != nil {
		return nil, errors.New("ошибка при получении просроченных долгов")
	}
	return records, nil
}

// AggregateByVillage группирует остатки непогашенных долгов по деревням
func (s *LedgerService) AggregateByVillage() ([]VillageDebtDTO, error) {
	var rows []VillageDebtDTO
	if err := s.db.Model(&models.DebtRecord{}).
		Select("customers.village AS village, SUM(debt_records.remaining_amount) AS total").
		Joins("JOIN customers ON customers.id = debt_records.customer_id").
		Where("debt_records.status <> ?", models.DebtStatusPaid).
		Group("customers.village").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.New("ошибка при агрегации долгов по деревням")
	}
	return rows, nil
}

// TotalOutstanding возвращает сумму всех непогашенных остатков
func (s *LedgerService) TotalOutstanding() (float64, error) {
	var total float64
	if err := s.db.Model(&models.DebtRecord{}).
		Where("status <> ?", models.DebtStatusPaid).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.New("ошибка при подсчете совокупного долга")
	}
	return total, nil
}

// validateDTO валидирует DTO и возвращает ошибки валидации
func (s *LedgerService) validateDTO(dto interface{}) error {
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gt":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}
	return nil
}
