package services

import (
	"sync"
	"testing"

	"agropos/database"
	"agropos/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB создает базу данных в памяти для тестов
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу: %v", err)
	}

	// Одно соединение, иначе каждый запрос получает пустую базу в памяти
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("не удалось выполнить миграции: %v", err)
	}

	return db
}

// seedCustomer создает тестового клиента
func seedCustomer(t *testing.T, db *gorm.DB, name, village string, debtLimit float64) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Name:      name,
		Village:   village,
		DebtLimit: debtLimit,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("не удалось создать клиента: %v", err)
	}
	return customer
}

// seedProduct создает тестовый товар
func seedProduct(t *testing.T, db *gorm.DB, name string, stock, priceRetail float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Type:        models.ProductTypeInsektisida,
		Unit:        "botol",
		Stock:       stock,
		PriceRetail: priceRetail,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("не удалось создать товар: %v", err)
	}
	return product
}

// seedSupplier создает тестового поставщика
func seedSupplier(t *testing.T, db *gorm.DB, name string) *models.Supplier {
	t.Helper()

	supplier := &models.Supplier{Name: name}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("не удалось создать поставщика: %v", err)
	}
	return supplier
}

// newTestLedger создает LedgerService для тестов без отправки почты
func newTestLedger(t *testing.T, db *gorm.DB) *LedgerService {
	t.Helper()

	return NewLedgerService(db, nil, &sync.Mutex{})
}
