package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// PurchaseController обрабатывает запросы по закупкам и поставщикам
type PurchaseController struct {
	purchaseService *services.PurchaseService
}

// NewPurchaseController создает новый экземпляр PurchaseController
func NewPurchaseController(db *database.Database) *PurchaseController {
	return &PurchaseController{
		purchaseService: services.NewPurchaseService(db.DB),
	}
}

// CreatePurchase обрабатывает запрос на создание закупки
func (c *PurchaseController) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var dto services.CreatePurchaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	purchase, err := c.purchaseService.Create(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, purchase)
}

// RegisterPayment обрабатывает запрос на платеж поставщику по закупке
func (c *PurchaseController) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid purchase id", http.StatusBadRequest)
		return
	}

	var dto services.PurchasePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.PurchaseID = uint(id)

	purchase, err := c.purchaseService.RegisterPayment(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}

// GetPurchases обрабатывает запрос на получение списка закупок
func (c *PurchaseController) GetPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := c.purchaseService.GetAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, purchases)
}

// GetPurchase обрабатывает запрос на получение закупки по ID
func (c *PurchaseController) GetPurchase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid purchase id", http.StatusBadRequest)
		return
	}

	purchase, err := c.purchaseService.GetByID(uint(id))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}

// DeletePurchase обрабатывает запрос на удаление закупки.
// Удалить можно только неоплаченную закупку.
func (c *PurchaseController) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid purchase id", http.StatusBadRequest)
		return
	}

	if err := c.purchaseService.Delete(uint(id)); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateSupplier обрабатывает запрос на создание поставщика
func (c *PurchaseController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var dto services.SupplierDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	supplier, err := c.purchaseService.CreateSupplier(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, supplier)
}

// UpdateSupplier обрабатывает запрос на изменение поставщика
func (c *PurchaseController) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid supplier id", http.StatusBadRequest)
		return
	}

	var dto services.SupplierDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	supplier, err := c.purchaseService.UpdateSupplier(uint(id), dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, supplier)
}

// GetSuppliers обрабатывает запрос на получение списка поставщиков
func (c *PurchaseController) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.purchaseService.GetSuppliers()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, suppliers)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *PurchaseController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/purchases", c.CreatePurchase).Methods("POST")
	router.HandleFunc("/purchases", c.GetPurchases).Methods("GET")
	router.HandleFunc("/purchases/{id:[0-9]+}", c.GetPurchase).Methods("GET")
	router.HandleFunc("/purchases/{id:[0-9]+}", c.DeletePurchase).Methods("DELETE")
	router.HandleFunc("/purchases/{id:[0-9]+}/payments", c.RegisterPayment).Methods("POST")
	router.HandleFunc("/suppliers", c.CreateSupplier).Methods("POST")
	router.HandleFunc("/suppliers", c.GetSuppliers).Methods("GET")
	router.HandleFunc("/suppliers/{id:[0-9]+}", c.UpdateSupplier).Methods("PUT")
}
