package services

import (
	"errors"
	"fmt"
	"time"

	"agropos/models"

	"github.com/beevik/etree"
	"gorm.io/gorm"
)

// DashboardStatsDTO представляет сводку для главной панели
type DashboardStatsDTO struct {
	TotalProducts     int64   `json:"totalProducts"`
	LowStockProducts  int64   `json:"lowStockProducts"`
	TodayTransactions int64   `json:"todayTransactions"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TotalDebt         float64 `json:"totalDebt"`
	OverdueDebts      int64   `json:"overdueDebts"`
}

// ReportService строит сводки и выгрузки для отчетов
type ReportService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewReportService создает новый экземпляр ReportService
func NewReportService(db *gorm.DB, ledger *LedgerService) *ReportService {
	return &ReportService{
		db:     db,
		ledger: ledger,
	}
}

// GetDashboardStats возвращает сводку для главной панели.
// Совокупный долг считается по остаткам записей долга,
// а не по несвязанным записям журнала.
func (s *ReportService) GetDashboardStats() (*DashboardStatsDTO, error) {
	stats := &DashboardStatsDTO{}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, errors.New("ошибка при подсчете товаров")
	}

	if err := s.db.Model(&models.Product{}).
		Where("stock <= min_stock").
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, errors.New("ошибка при подсчете товаров с низким остатком")
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.Sale{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.TodayTransactions).Error; err != nil {
		return nil, errors.New("ошибка при подсчете продаж за день")
	}

	if err := s.db.Model(&models.Sale{}).
		Where("created_at >= ?", startOfDay).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TodayRevenue).Error; err != nil {
		return nil, errors.New("ошибка при подсчете выручки за день")
	}

	totalDebt, err := s.ledger.TotalOutstanding()
	if err != nil {
		return nil, err
	}
	stats.TotalDebt = totalDebt

	overdue, err := s.ledger.ListOverdue(now)
	if err != nil {
		return nil, err
	}
	stats.OverdueDebts = int64(len(overdue))

	return stats, nil
}

// GetDebtByVillage возвращает суммы непогашенных долгов по деревням
func (s *ReportService) GetDebtByVillage() ([]VillageDebtDTO, error) {
	return s.ledger.AggregateByVillage()
}

// ExportSalesXML выгружает продажи за период в XML
func (s *ReportService) ExportSalesXML(from, to time.Time) ([]byte, error) {
	var sales []models.Sale
	if err := s.db.Preload("Items").Preload("Customer").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&sales).Error; err != nil {
		return nil, errors.New("ошибка при получении продаж за период")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("salesReport")
	root.CreateAttr("from", from.Format("2006-01-02"))
	root.CreateAttr("to", to.Format("2006-01-02"))

	var total float64
	for _, sale := range sales {
		e := root.CreateElement("sale")
		e.CreateAttr("number", sale.Number)
		e.CreateAttr("date", sale.CreatedAt.Format(time.RFC3339))
		e.CreateAttr("paymentType", string(sale.PaymentType))
		if sale.Customer != nil {
			customer := e.CreateElement("customer")
			customer.CreateAttr("id", fmt.Sprintf("%d", sale.Customer.ID))
			customer.CreateText(sale.Customer.Name)
		}
		for _, item := range sale.Items {
			line := e.CreateElement("item")
			line.CreateAttr("product", item.ProductName)
			line.CreateAttr("quantity", fmt.Sprintf("%g", item.Quantity))
			line.CreateAttr("unit", item.Unit)
			line.CreateAttr("unitPrice", fmt.Sprintf("%.2f", item.UnitPrice))
			line.CreateAttr("subtotal", fmt.Sprintf("%.2f", item.Subtotal))
		}
		e.CreateElement("total").CreateText(fmt.Sprintf("%.2f", sale.Total))
		total += sale.Total
	}
	root.CreateElement("grandTotal").CreateText(fmt.Sprintf("%.2f", total))

	doc.Indent(2)
	return doc.WriteToBytes()
}
