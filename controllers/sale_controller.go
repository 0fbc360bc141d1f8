package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// SaleController обрабатывает запросы кассы
type SaleController struct {
	checkoutService *services.CheckoutService
}

// NewSaleController создает новый экземпляр SaleController.
// Сервис кассы разделяет LedgerService с контроллером долгов,
// чтобы продажи в кредит проходили через общий учет.
func NewSaleController(db *database.Database, ledger *services.LedgerService) *SaleController {
	return &SaleController{
		checkoutService: services.NewCheckoutService(db.DB, ledger),
	}
}

// CheckoutService возвращает сервис кассы
func (c *SaleController) CheckoutService() *services.CheckoutService {
	return c.checkoutService
}

// CreateSale обрабатывает запрос на проведение продажи
func (c *SaleController) CreateSale(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateSaleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sale, err := c.checkoutService.CreateSale(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

// GetSales обрабатывает запрос на получение списка продаж
func (c *SaleController) GetSales(w http.ResponseWriter, r *http.Request) {
	// Фильтр "только сегодняшние" для экрана кассы
	if r.URL.Query().Get("today") == "true" {
		sales, err := c.checkoutService.GetTodaySales()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sales)
		return
	}

	sales, err := c.checkoutService.GetSales()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sales)
}

// GetSale обрабатывает запрос на получение продажи по ID
func (c *SaleController) GetSale(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid sale id", http.StatusBadRequest)
		return
	}

	sale, err := c.checkoutService.GetSaleByID(uint(id))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *SaleController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sales", c.CreateSale).Methods("POST")
	router.HandleFunc("/sales", c.GetSales).Methods("GET")
	router.HandleFunc("/sales/{id:[0-9]+}", c.GetSale).Methods("GET")
}
