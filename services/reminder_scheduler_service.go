package services

import (
	"log"
	"time"
)

// ReminderSchedulerService периодически рассылает владельцу сводки
// по просроченным долгам и низким остаткам
type ReminderSchedulerService struct {
	ledger   *LedgerService
	products *ProductService
	email    *EmailService
	interval time.Duration
}

// NewReminderSchedulerService создает новый экземпляр ReminderSchedulerService
func NewReminderSchedulerService(ledger *LedgerService, products *ProductService, email *EmailService, interval time.Duration) *ReminderSchedulerService {
	return &ReminderSchedulerService{
		ledger:   ledger,
		products: products,
		email:    email,
		interval: interval,
	}
}

// Start запускает планировщик напоминаний
func (s *ReminderSchedulerService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			if err := s.processOverdueDigest(); err != nil {
				log.Printf("Ошибка при рассылке сводки просроченных долгов: %v", err)
			}
			if err := s.processLowStockDigest(); err != nil {
				log.Printf("Ошибка при рассылке сводки низких остатков: %v", err)
			}
		}
	}()
}

// processOverdueDigest собирает просроченные долги и отправляет сводку
func (s *ReminderSchedulerService) processOverdueDigest() error {
	records, err := s.ledger.ListOverdue(time.Now())
	if err != nil {
		return err
	}
	return s.email.SendOverdueDigest(records)
}

// processLowStockDigest собирает товары с низким остатком и отправляет сводку
func (s *ReminderSchedulerService) processLowStockDigest() error {
	products, err := s.products.GetLowStock()
	if err != nil {
		return err
	}
	return s.email.SendLowStockDigest(products)
}
