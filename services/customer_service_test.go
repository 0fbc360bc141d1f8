package services

import (
	"errors"
	"testing"
)

func TestCustomerDeleteBlockedByDebt(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customers := NewCustomerService(db)
	customer := seedCustomer(t, db, "Pak Budi", "Sumberejo", 1000000)

	record, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: customer.ID, Amount: 100000})
	if err != nil {
		t.Fatal(err)
	}

	// Клиента с непогашенным долгом удалить нельзя
	if err := customers.Delete(customer.ID); !errors.Is(err, ErrCustomerHasDebt) {
		t.Fatalf("ожидалась ошибка ErrCustomerHasDebt, получено: %v", err)
	}

	// После полной оплаты удаление проходит
	if _, err := ledger.ApplyPayment(ApplyPaymentDTO{DebtID: record.ID, Amount: 100000}); err != nil {
		t.Fatal(err)
	}
	if err := customers.Delete(customer.ID); err != nil {
		t.Fatalf("Delete вернул ошибку: %v", err)
	}
}

func TestCustomerUpdateDoesNotTouchDebt(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	customers := NewCustomerService(db)
	customer := seedCustomer(t, db, "Pak Budi", "Sumberejo", 1000000)

	if _, err := ledger.RecordDebt(RecordDebtDTO{SaleID: 1, CustomerID: customer.ID, Amount: 250000}); err != nil {
		t.Fatal(err)
	}

	updated, err := customers.Update(customer.ID, CustomerDTO{
		Name:      "Pak Budi Santoso",
		Village:   "Sumberejo",
		DebtLimit: 2000000,
	})
	if err != nil {
		t.Fatalf("Update вернул ошибку: %v", err)
	}

	if updated.Name != "Pak Budi Santoso" {
		t.Errorf("имя клиента: got %v want %v", updated.Name, "Pak Budi Santoso")
	}
	if updated.CurrentDebt != 250000 {
		t.Errorf("текущий долг после обновления: got %v want %v", updated.CurrentDebt, 250000.0)
	}
}

func TestGetVillages(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerService(db)

	seedCustomer(t, db, "Pak Budi", "Sumberejo", 0)
	seedCustomer(t, db, "Bu Sri", "Sumberejo", 0)
	seedCustomer(t, db, "Pak Joko", "Karanganyar", 0)

	villages, err := customers.GetVillages()
	if err != nil {
		t.Fatal(err)
	}
	if len(villages) != 2 {
		t.Errorf("количество деревень: got %d want %d", len(villages), 2)
	}
}

func TestGetAllFiltersByVillage(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerService(db)

	seedCustomer(t, db, "Pak Budi", "Sumberejo", 0)
	seedCustomer(t, db, "Pak Joko", "Karanganyar", 0)

	list, err := customers.GetAll("Sumberejo")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("количество клиентов: got %d want %d", len(list), 1)
	}
	if list[0].Name != "Pak Budi" {
		t.Errorf("клиент: got %v want %v", list[0].Name, "Pak Budi")
	}
}
