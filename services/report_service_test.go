package services

import (
	"strings"
	"testing"
	"time"
)

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	checkout := NewCheckoutService(db, ledger)
	reports := NewReportService(db, ledger)

	customer := seedCustomer(t, db, "Pak Budi", "Sumberejo", 1000000)
	cheap := seedProduct(t, db, "Regent 100ml", 10, 45000)
	seedProduct(t, db, "Gramoxone 1L", 0, 75000) // низкий остаток

	// Одна продажа за наличные и одна в кредит
	if _, err := checkout.CreateSale(CreateSaleDTO{
		Items:       []SaleItemDTO{{ProductID: cheap.ID, Quantity: 1}},
		PaymentType: "CASH",
		AmountPaid:  45000,
	}); err != nil {
		t.Fatal(err)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	if _, err := ledger.RecordDebt(RecordDebtDTO{
		SaleID:     99,
		CustomerID: customer.ID,
		Amount:     200000,
		DueDate:    &yesterday,
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := reports.GetDashboardStats()
	if err != nil {
		t.Fatalf("GetDashboardStats вернул ошибку: %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Errorf("количество товаров: got %d want %d", stats.TotalProducts, 2)
	}
	if stats.LowStockProducts != 1 {
		t.Errorf("товары с низким остатком: got %d want %d", stats.LowStockProducts, 1)
	}
	if stats.TodayTransactions != 1 {
		t.Errorf("продажи за день: got %d want %d", stats.TodayTransactions, 1)
	}
	if stats.TodayRevenue != 45000 {
		t.Errorf("выручка за день: got %v want %v", stats.TodayRevenue, 45000.0)
	}
	if stats.TotalDebt != 200000 {
		t.Errorf("совокупный долг: got %v want %v", stats.TotalDebt, 200000.0)
	}
	if stats.OverdueDebts != 1 {
		t.Errorf("просроченные долги: got %d want %d", stats.OverdueDebts, 1)
	}
}

func TestExportSalesXML(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	checkout := NewCheckoutService(db, ledger)
	reports := NewReportService(db, ledger)

	product := seedProduct(t, db, "Regent 100ml", 10, 45000)

	sale, err := checkout.CreateSale(CreateSaleDTO{
		Items:       []SaleItemDTO{{ProductID: product.ID, Quantity: 2}},
		PaymentType: "CASH",
		AmountPaid:  90000,
	})
	if err != nil {
		t.Fatal(err)
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	data, err := reports.ExportSalesXML(from, to)
	if err != nil {
		t.Fatalf("ExportSalesXML вернул ошибку: %v", err)
	}

	xml := string(data)
	if !strings.Contains(xml, "<salesReport") {
		t.Errorf("выгрузка не содержит корневой элемент: %s", xml)
	}
	if !strings.Contains(xml, sale.Number) {
		t.Errorf("выгрузка не содержит номер чека %s", sale.Number)
	}
	if !strings.Contains(xml, "Regent 100ml") {
		t.Errorf("выгрузка не содержит название товара")
	}

	// Период без продаж дает пустой отчет
	data, err = reports.ExportSalesXML(from.Add(-48*time.Hour), from.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<sale ") {
		t.Errorf("пустой период не должен содержать продаж")
	}
}
