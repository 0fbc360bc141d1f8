package services

import (
	"errors"
	"testing"

	"agropos/models"
)

func TestCreatePurchaseDebtRaisesSupplierDebt(t *testing.T) {
	db := newTestDB(t)
	purchases := NewPurchaseService(db)
	supplier := seedSupplier(t, db, "CV Tani Makmur")
	product := seedProduct(t, db, "Urea 50kg", 10, 350000)

	purchase, err := purchases.Create(CreatePurchaseDTO{
		SupplierID: supplier.ID,
		Items: []PurchaseItemDTO{
			{ProductID: product.ID, Quantity: 20, UnitCost: 300000},
		},
		PaymentType: "DEBT",
	})
	if err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}

	if purchase.Total != 6000000 {
		t.Errorf("итог закупки: got %v want %v", purchase.Total, 6000000.0)
	}

	// Приход увеличивает остаток и обновляет закупочную цену
	var updated models.Product
	if err := db.First(&updated, product.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.Stock != 30 {
		t.Errorf("остаток после прихода: got %v want %v", updated.Stock, 30.0)
	}
	if updated.PriceCost != 300000 {
		t.Errorf("закупочная цена: got %v want %v", updated.PriceCost, 300000.0)
	}

	// Неоплаченная закупка увеличивает долг перед поставщиком
	var updatedSupplier models.Supplier
	if err := db.First(&updatedSupplier, supplier.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updatedSupplier.Debt != 6000000 {
		t.Errorf("долг перед поставщиком: got %v want %v", updatedSupplier.Debt, 6000000.0)
	}
}

func TestRegisterPaymentLowersSupplierDebt(t *testing.T) {
	db := newTestDB(t)
	purchases := NewPurchaseService(db)
	supplier := seedSupplier(t, db, "CV Tani Makmur")
	product := seedProduct(t, db, "Urea 50kg", 10, 350000)

	purchase, err := purchases.Create(CreatePurchaseDTO{
		SupplierID:  supplier.ID,
		Items:       []PurchaseItemDTO{{ProductID: product.ID, Quantity: 10, UnitCost: 300000}},
		PaymentType: "DEBT",
	})
	if err != nil {
		t.Fatal(err)
	}

	purchase, err = purchases.RegisterPayment(PurchasePaymentDTO{PurchaseID: purchase.ID, Amount: 1000000})
	if err != nil {
		t.Fatalf("RegisterPayment вернул ошибку: %v", err)
	}

	if purchase.AmountPaid != 1000000 {
		t.Errorf("оплачено по закупке: got %v want %v", purchase.AmountPaid, 1000000.0)
	}
	if purchase.Outstanding() != 2000000 {
		t.Errorf("остаток по закупке: got %v want %v", purchase.Outstanding(), 2000000.0)
	}

	var updatedSupplier models.Supplier
	if err := db.First(&updatedSupplier, supplier.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updatedSupplier.Debt != 2000000 {
		t.Errorf("долг перед поставщиком: got %v want %v", updatedSupplier.Debt, 2000000.0)
	}

	// Платеж больше остатка отклоняется
	_, err = purchases.RegisterPayment(PurchasePaymentDTO{PurchaseID: purchase.ID, Amount: 5000000})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ожидалась ошибка ErrInvalidAmount, получено: %v", err)
	}
}

func TestDeletePurchaseOnlyPending(t *testing.T) {
	db := newTestDB(t)
	purchases := NewPurchaseService(db)
	supplier := seedSupplier(t, db, "CV Tani Makmur")
	product := seedProduct(t, db, "Urea 50kg", 10, 350000)

	purchase, err := purchases.Create(CreatePurchaseDTO{
		SupplierID:  supplier.ID,
		Items:       []PurchaseItemDTO{{ProductID: product.ID, Quantity: 10, UnitCost: 300000}},
		PaymentType: "DEBT",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Частично оплаченную закупку удалить нельзя
	if _, err := purchases.RegisterPayment(PurchasePaymentDTO{PurchaseID: purchase.ID, Amount: 500000}); err != nil {
		t.Fatal(err)
	}
	if err := purchases.Delete(purchase.ID); !errors.Is(err, ErrPurchaseNotPending) {
		t.Fatalf("ожидалась ошибка ErrPurchaseNotPending, получено: %v", err)
	}
}

func TestCreatePurchaseUnknownSupplier(t *testing.T) {
	db := newTestDB(t)
	purchases := NewPurchaseService(db)
	product := seedProduct(t, db, "Urea 50kg", 10, 350000)

	_, err := purchases.Create(CreatePurchaseDTO{
		SupplierID:  9999,
		Items:       []PurchaseItemDTO{{ProductID: product.ID, Quantity: 1, UnitCost: 300000}},
		PaymentType: "CASH",
	})
	if !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("ожидалась ошибка ErrSupplierNotFound, получено: %v", err)
	}
}
