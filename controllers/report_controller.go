package controllers

import (
	"net/http"
	"time"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// ReportController обрабатывает запросы отчетности
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController создает новый экземпляр ReportController
func NewReportController(db *database.Database, ledger *services.LedgerService) *ReportController {
	return &ReportController{
		reportService: services.NewReportService(db.DB, ledger),
	}
}

// GetDashboard обрабатывает запрос на сводку для главного экрана
func (c *ReportController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.reportService.GetDashboardStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetDebtByVillage обрабатывает запрос на сводку долгов по деревням
func (c *ReportController) GetDebtByVillage(w http.ResponseWriter, r *http.Request) {
	rows, err := c.reportService.GetDebtByVillage()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// ExportSales обрабатывает запрос на выгрузку продаж в XML.
// Период задается параметрами from и to в формате 2006-01-02.
func (c *ReportController) ExportSales(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"), time.Time{})
	if err != nil {
		http.Error(w, "Invalid from date", http.StatusBadRequest)
		return
	}

	to, err := parseDateParam(r.URL.Query().Get("to"), time.Now())
	if err != nil {
		http.Error(w, "Invalid to date", http.StatusBadRequest)
		return
	}

	data, err := c.reportService.ExportSalesXML(from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.xml"`)
	w.Write(data)
}

// parseDateParam разбирает дату из query-параметра, пустое значение
// заменяется на значение по умолчанию
func parseDateParam(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	return time.Parse("2006-01-02", value)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *ReportController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reports/dashboard", c.GetDashboard).Methods("GET")
	router.HandleFunc("/reports/debt-by-village", c.GetDebtByVillage).Methods("GET")
	router.HandleFunc("/reports/sales.xml", c.ExportSales).Methods("GET")
}
