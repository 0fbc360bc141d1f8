package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// DebtController обрабатывает запросы, связанные с долгами клиентов
type DebtController struct {
	ledgerService *services.LedgerService
}

// NewDebtController создает новый экземпляр DebtController
func NewDebtController(db *database.Database, email *services.EmailService, mu *sync.Mutex) *DebtController {
	return &DebtController{
		ledgerService: services.NewLedgerService(db.DB, email, mu),
	}
}

// LedgerService возвращает сервис долгов для разделения с другими контроллерами
func (c *DebtController) LedgerService() *services.LedgerService {
	return c.ledgerService
}

// RecordDebt обрабатывает запрос на ручную запись долга
func (c *DebtController) RecordDebt(w http.ResponseWriter, r *http.Request) {
	// Создаем DTO для запроса
	var dto services.RecordDebtDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Записываем долг
	record, err := c.ledgerService.RecordDebt(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ApplyPayment обрабатывает запрос на платеж по долгу
func (c *DebtController) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	// Получаем ID записи долга из пути
	vars := mux.Vars(r)
	debtID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid debt id", http.StatusBadRequest)
		return
	}

	// Создаем DTO для запроса
	var dto services.ApplyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.DebtID = uint(debtID)

	// Проводим платеж
	record, err := c.ledgerService.ApplyPayment(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetDebts обрабатывает запрос на получение списка долгов
func (c *DebtController) GetDebts(w http.ResponseWriter, r *http.Request) {
	// Фильтр по клиенту через query-параметр
	if customerParam := r.URL.Query().Get("customer_id"); customerParam != "" {
		customerID, err := strconv.ParseUint(customerParam, 10, 32)
		if err != nil {
			http.Error(w, "Invalid customer id", http.StatusBadRequest)
			return
		}

		records, err := c.ledgerService.GetByCustomer(uint(customerID))
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}

		writeJSON(w, http.StatusOK, records)
		return
	}

	records, err := c.ledgerService.GetAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GetDebt обрабатывает запрос на получение записи долга по ID
func (c *DebtController) GetDebt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	debtID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid debt id", http.StatusBadRequest)
		return
	}

	record, err := c.ledgerService.GetByID(uint(debtID))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetOverdue обрабатывает запрос на получение просроченных долгов
func (c *DebtController) GetOverdue(w http.ResponseWriter, r *http.Request) {
	records, err := c.ledgerService.ListOverdue(time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *DebtController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/debts", c.RecordDebt).Methods("POST")
	router.HandleFunc("/debts", c.GetDebts).Methods("GET")
	router.HandleFunc("/debts/overdue", c.GetOverdue).Methods("GET")
	router.HandleFunc("/debts/{id:[0-9]+}", c.GetDebt).Methods("GET")
	router.HandleFunc("/debts/{id:[0-9]+}/payments", c.ApplyPayment).Methods("POST")
}
