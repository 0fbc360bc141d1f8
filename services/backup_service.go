package services

import (
	"encoding/json"
	"errors"
	"time"

	"agropos/models"
	"agropos/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBadBackupSignature = errors.New("недействительная подпись резервной копии")

// BackupEnvelope представляет содержимое резервной копии
type BackupEnvelope struct {
	ID          string              `json:"id"`
	CreatedAt   time.Time           `json:"createdAt"`
	Products    []models.Product    `json:"products"`
	Customers   []models.Customer   `json:"customers"`
	Suppliers   []models.Supplier   `json:"suppliers"`
	Sales       []models.Sale       `json:"sales"`
	Purchases   []models.Purchase   `json:"purchases"`
	DebtRecords []models.DebtRecord `json:"debtRecords"`
}

// SignedBackup представляет резервную копию с HMAC-подписью
type SignedBackup struct {
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

// BackupService выгружает и восстанавливает все данные магазина.
// Содержимое копии подписывается HMAC-SHA256, восстановление
// с неверной подписью отклоняется целиком.
type BackupService struct {
	db      *gorm.DB
	hmacKey string
}

// NewBackupService создает новый экземпляр BackupService
func NewBackupService(db *gorm.DB, hmacKey string) *BackupService {
	return &BackupService{
		db:      db,
		hmacKey: hmacKey,
	}
}

// Export собирает все данные и возвращает подписанную резервную копию
func (s *BackupService) Export() (*SignedBackup, error) {
	envelope := BackupEnvelope{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}

	if err := s.db.Order("id ASC").Find(&envelope.Products).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке товаров")
	}
	if err := s.db.Order("id ASC").Find(&envelope.Customers).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке клиентов")
	}
	if err := s.db.Order("id ASC").Find(&envelope.Suppliers).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке поставщиков")
	}
	if err := s.db.Preload("Items").Order("id ASC").Find(&envelope.Sales).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке продаж")
	}
	if err := s.db.Preload("Items").Order("id ASC").Find(&envelope.Purchases).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке закупок")
	}
	if err := s.db.Preload("Payments").Order("id ASC").Find(&envelope.DebtRecords).Error; err != nil {
		return nil, errors.New("ошибка при выгрузке записей долга")
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.New("ошибка при сериализации резервной копии")
	}

	return &SignedBackup{
		Data:      data,
		Signature: utils.SignHMAC(data, s.hmacKey),
	}, nil
}

// Restore проверяет подпись и замещает все данные содержимым копии
func (s *BackupService) Restore(backup SignedBackup) error {
	// Проверяем подпись до разбора содержимого
	if !utils.VerifyHMAC(backup.Data, backup.Signature, s.hmacKey) {
		return ErrBadBackupSignature
	}

	var envelope BackupEnvelope
	if err := json.Unmarshal(backup.Data, &envelope); err != nil {
		return errors.New("ошибка при разборе резервной копии")
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	// Очищаем текущие данные
	tables := []interface{}{
		&models.DebtPayment{},
		&models.DebtRecord{},
		&models.SaleItem{},
		&models.Sale{},
		&models.PurchaseItem{},
		&models.Purchase{},
		&models.Supplier{},
		&models.Customer{},
		&models.Product{},
	}
	for _, table := range tables {
		if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при очистке данных")
		}
	}

	// Восстанавливаем данные копии
	for i := range envelope.Products {
		if err := tx.Create(&envelope.Products[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении товаров")
		}
	}
	for i := range envelope.Customers {
		if err := tx.Create(&envelope.Customers[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении клиентов")
		}
	}
	for i := range envelope.Suppliers {
		if err := tx.Create(&envelope.Suppliers[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении поставщиков")
		}
	}
	for i := range envelope.Sales {
		if err := tx.Create(&envelope.Sales[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении продаж")
		}
	}
	for i := range envelope.Purchases {
		if err := tx.Create(&envelope.Purchases[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении закупок")
		}
	}
	for i := range envelope.DebtRecords {
		if err := tx.Create(&envelope.DebtRecords[i]).Error; err != nil {
			tx.Rollback()
			return errors.New("ошибка при восстановлении записей долга")
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}

	return nil
}
