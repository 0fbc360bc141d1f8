package services

import (
	"errors"
	"testing"
	"time"

	"agropos/models"
)

func TestRecordDebtAndPartialPayment(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Pak Budi", "Sumberejo", 1000000)

	// Записываем долг на 600000
	record, err := ledger.RecordDebt(RecordDebtDTO{
		SaleID:     1,
		CustomerID: customer.ID,
		Amount:     600000,
	})
	if err != nil {
		t.Fatalf("RecordDebt вернул ошибку: %v", err)
	}

	if record.Status != models.DebtStatusPending {
		t.Errorf("статус нового долга: got %v want %v", record.Status, models.DebtStatusPending)
	}
	if record.RemainingAmount != 600000 {
		t.Errorf("остаток нового долга: got %v want %v", record.RemainingAmount, 600000.0)
	}

	// Платеж 200000 переводит долг в PARTIAL
	record, err = ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: 200000})
	if err != nil {
		t.Fatalf("ApplyPayment вернул ошибку: %v", err)
	}

	if record.Status != models.DebtStatusPartial {
		t.Errorf("статус после частичного платежа: got %v want %v", record.Status, models.DebtStatusPartial)
	}
	if record.PaidAmount != 200000 {
		t.Errorf("оплачено: got %v want %v", record.PaidAmount, 200000.0)
	}
	if record.RemainingAmount != 400000 {
		t.Errorf("остаток: got %v want %v", record.RemainingAmount, 400000.0)
	}

	// Долг клиента должен уменьшиться на сумму платежа
	var updated models.Customer
	if err := db.First(&updated, customer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.CurrentDebt != 400000 {
		t.Errorf("текущий долг клиента: got %v want %v", updated.CurrentDebt, 400000.0)
	}

	// Платеж 400000 закрывает долг
	record, err = ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: 400000})
	if err != nil {
		t.Fatalf("ApplyPayment вернул ошибку: %v", err)
	}

	if record.Status != models.DebtStatusPaid {
		t.Errorf("статус после полной оплаты: got %v want %v", record.Status, models.DebtStatusPaid)
	}
	if record.RemainingAmount != 0 {
		t.Errorf("остаток после полной оплаты: got %v want %v", record.RemainingAmount, 0.0)
	}

	if err := db.First(&updated, customer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.CurrentDebt != 0 {
		t.Errorf("текущий долг клиента после оплаты: got %v want %v", updated.CurrentDebt, 0.0)
	}
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Pak Slamet", "Karanganyar", 1000000)

	record, err := ledger.RecordDebt(RecordDebtDTO{
		SaleID:     1,
		CustomerID: customer.ID,
		Amount:     600000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: 200000}); err != nil {
		t.Fatal(err)
	}

	// Платеж 500000 превышает остаток 400000 и должен быть отклонен
	_, err = ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: 500000})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ожидалась ошибка ErrInvalidAmount, получено: %v", err)
	}

	// Отклоненный платеж не должен менять состояние
	after, err := ledger.GetByID(record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.PaidAmount != 200000 {
		t.Errorf("оплачено после отклоненного платежа: got %v want %v", after.PaidAmount, 200000.0)
	}
	if after.RemainingAmount != 400000 {
		t.Errorf("остаток после отклоненного платежа: got %v want %v", after.RemainingAmount, 400000.0)
	}
	if after.Status != models.DebtStatusPartial {
		t.Errorf("статус после отклоненного платежа: got %v want %v", after.Status, models.DebtStatusPartial)
	}
	if len(after.Payments) != 1 {
		t.Errorf("количество платежей: got %d want %d", len(after.Payments), 1)
	}

	var updated models.Customer
	if err := db.First(&updated, customer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.CurrentDebt != 400000 {
		t.Errorf("текущий долг клиента: got %v want %v", updated.CurrentDebt, 400000.0)
	}
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Bu Sri", "Sumberejo", 1000000)

	record, err := ledger.RecordDebt(RecordDebtDTO{
		SaleID:     1,
		CustomerID: customer.ID,
		Amount:     100000,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, amount := range []float64{0, -50000} {
		if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: amount}); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("платеж %v: ожидалась ошибка ErrInvalidAmount, получено: %v", amount, err)
		}
	}
}

func TestRecordDebtUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)

	_, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: 9999, Amount: 100000})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("ожидалась ошибка ErrCustomerNotFound, получено: %v", err)
	}
}

func TestApplyPaymentUnknownDebt(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)

	_, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: 9999, Amount: 100000})
	if !errors.Is(err, ErrDebtNotFound) {
		t.Fatalf("ожидалась ошибка ErrDebtNotFound, получено: %v", err)
	}
}

func TestRecordDebtEnforcesLimit(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Pak Joko", "Karanganyar", 500000)

	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: customer.ID, Amount: 400000}); err != nil {
		t.Fatal(err)
	}

	// Второй долг превысил бы лимит 500000
	_, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 2, CustomerID: customer.ID, Amount: 200000})
	if !errors.Is(err, ErrDebtLimitExceeded) {
		t.Fatalf("ожидалась ошибка ErrDebtLimitExceeded, получено: %v", err)
	}

	// Долг клиента не должен измениться
	var updated models.Customer
	if err := db.First(&updated, customer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.CurrentDebt != 400000 {
		t.Errorf("текущий долг клиента: got %v want %v", updated.CurrentDebt, 400000.0)
	}
}

func TestCurrentDebtMatchesOpenRecords(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Pak Wawan", "Sumberejo", 10000000)

	// Несколько долгов и платежей подряд
	first, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: customer.ID, Amount: 300000})
	if err != nil {
		t.Fatal(err)
	}
	second, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 2, CustomerID: customer.ID, Amount: 450000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: first.ID, Amount: 300000}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: second.ID, Amount: 150000}); err != nil {
		t.Fatal(err)
	}

	// Текущий долг клиента равен сумме остатков непогашенных записей
	records, err := ledger.GetByCustomer(customer.ID)
	if err != nil {
		t.Fatal(err)
	}

	var open float64
	for _, r := range records {
		if r.Status != models.DebtStatusPaid {
			open += r.RemainingAmount
		}
	}

	var updated models.Customer
	if err := db.First(&updated, customer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.CurrentDebt != open {
		t.Errorf("текущий долг клиента: got %v want %v", updated.CurrentDebt, open)
	}
	if open != 300000 {
		t.Errorf("сумма остатков: got %v want %v", open, 300000.0)
	}
}

func TestListOverdue(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customer := seedCustomer(t, db, "Pak Agus", "Sumberejo", 10000000)

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	overdue, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: customer.ID, Amount: 100000, DueDate: &yesterday})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 2, CustomerID: customer.ID, Amount: 100000, DueDate: &tomorrow}); err != nil {
		t.Fatal(err)
	}
	// Долг без срока не может быть просрочен
	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 3, CustomerID: customer.ID, Amount: 100000}); err != nil {
		t.Fatal(err)
	}

	records, err := ledger.ListOverdue(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("количество просроченных долгов: got %d want %d", len(records), 1)
	}
	if records[0].ID != overdue.ID {
		t.Errorf("просроченный долг: got %d want %d", records[0].ID, overdue.ID)
	}

	// Оплаченный долг исчезает из просроченных
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: overdue.ID, Amount: 100000}); err != nil {
		t.Fatal(err)
	}
	records, err = ledger.ListOverdue(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("количество просроченных долгов после оплаты: got %d want %d", len(records), 0)
	}
}

func TestAggregateByVillage(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)

	budi := seedCustomer(t, db, "Pak Budi", "Sumberejo", 10000000)
	sri := seedCustomer(t, db, "Bu Sri", "Sumberejo", 10000000)
	joko := seedCustomer(t, db, "Pak Joko", "Karanganyar", 10000000)

	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: budi.ID, Amount: 200000}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 2, CustomerID: sri.ID, Amount: 300000}); err != nil {
		t.Fatal(err)
	}
	paid, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 3, CustomerID: joko.ID, Amount: 150000})
	if err != nil {
		t.Fatal(err)
	}

	// Оплаченные долги не попадают в сводку
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: paid.ID, Amount: 150000}); err != nil {
		t.Fatal(err)
	}

	rows, err := ledger.AggregateByVillage()
	if err != nil {
		t.Fatal(err)
	}

	totals := make(map[string]float64)
	for _, row := range rows {
		totals[row.Village] = row.Total
	}

	if totals["Sumberejo"] != 500000 {
		t.Errorf("долг по Sumberejo: got %v want %v", totals["Sumberejo"], 500000.0)
	}
	if _, ok := totals["Karanganyar"]; ok {
		t.Errorf("деревня с полностью оплаченными долгами не должна попадать в сводку")
	}
}
