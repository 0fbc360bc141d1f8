package services

import (
	"errors"
	"strings"
	"time"

	"agropos/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var ErrCustomerHasDebt = errors.New("у клиента есть непогашенный долг")

// CustomerDTO представляет данные для создания или обновления клиента
type CustomerDTO struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Phone       string     `json:"phone" validate:"omitempty,max=30"`
	Village     string     `json:"village" validate:"required,max=100"`
	FarmerGroup string     `json:"farmer_group" validate:"omitempty,max=100"`
	Address     string     `json:"address" validate:"omitempty,max=255"`
	HarvestDate *time.Time `json:"harvest_date,omitempty"`
	DebtLimit   float64    `json:"debt_limit" validate:"gte=0"`
}

// CustomerService предоставляет методы для работы с клиентами
type CustomerService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewCustomerService создает новый экземпляр CustomerService
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		db:        db,
		validator: validator.New(),
	}
}

// Create создает нового клиента
func (s *CustomerService) Create(dto CustomerDTO) (*models.Customer, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:        dto.Name,
		Phone:       dto.Phone,
		Village:     dto.Village,
		FarmerGroup: dto.FarmerGroup,
		Address:     dto.Address,
		HarvestDate: dto.HarvestDate,
		DebtLimit:   dto.DebtLimit,
		CurrentDebt: 0,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, errors.New("не удалось создать клиента")
	}

	return customer, nil
}

// Update обновляет данные клиента. Совокупный долг клиента
// меняет только леджер, здесь он не трогается.
func (s *CustomerService) Update(id uint, dto CustomerDTO) (*models.Customer, error) {
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.New("ошибка при поиске клиента")
	}

	customer.Name = dto.Name
	customer.Phone = dto.Phone
	customer.Village = dto.Village
	customer.FarmerGroup = dto.FarmerGroup
	customer.Address = dto.Address
	customer.HarvestDate = dto.HarvestDate
	customer.DebtLimit = dto.DebtLimit
	customer.UpdatedAt = time.Now()

	if err := s.db.Save(&customer).Error; err != nil {
		return nil, errors.New("ошибка при обновлении клиента")
	}

	return &customer, nil
}

// Delete удаляет клиента. Клиент с непогашенным долгом не удаляется.
func (s *CustomerService) Delete(id uint) error {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return errors.New("ошибка при поиске клиента")
	}

	if customer.CurrentDebt > 0 {
		return ErrCustomerHasDebt
	}

	if err := s.db.Delete(&customer).Error; err != nil {
		return errors.New("ошибка при удалении клиента")
	}
	return nil
}

// GetByID возвращает клиента по ID
func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.New("ошибка при поиске клиента")
	}
	return &customer, nil
}

// GetAll возвращает клиентов, опционально отфильтрованных по деревне
func (s *CustomerService) GetAll(village string) ([]models.Customer, error) {
	query := s.db.Order("name ASC")
	if village != "" {
		query = query.Where("village = ?", village)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, errors.New("ошибка при получении клиентов")
	}
	return customers, nil
}

// GetVillages возвращает список деревень, в которых есть клиенты
func (s *CustomerService) GetVillages() ([]string, error) {
	var villages []string
	if err := s.db.Model(&models.Customer{}).
		Distinct("village").
		Order("village ASC").
		Pluck("village", &villages).Error; err != nil {
		return nil, errors.New("ошибка при получении списка деревень")
	}
	return villages, nil
}

// validateDTO валидирует DTO и возвращает ошибки валидации
func (s *CustomerService) validateDTO(dto interface{}) error {
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
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}
	return nil
}
