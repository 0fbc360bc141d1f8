package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// CustomerController обрабатывает запросы, связанные с клиентами магазина
type CustomerController struct {
	customerService *services.CustomerService
}

// NewCustomerController создает новый экземпляр CustomerController
func NewCustomerController(db *database.Database) *CustomerController {
	return &CustomerController{
		customerService: services.NewCustomerService(db.DB),
	}
}

// CreateCustomer обрабатывает запрос на создание клиента
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var dto services.CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.Create(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// UpdateCustomer обрабатывает запрос на изменение клиента
func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	var dto services.CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.Update(uint(id), dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// DeleteCustomer обрабатывает запрос на удаление клиента.
// Клиента с непогашенным долгом удалить нельзя.
func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	if err := c.customerService.Delete(uint(id)); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCustomers обрабатывает запрос на получение списка клиентов
func (c *CustomerController) GetCustomers(w http.ResponseWriter, r *http.Request) {
	village := r.URL.Query().Get("village")

	customers, err := c.customerService.GetAll(village)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer обрабатывает запрос на получение клиента по ID
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.GetByID(uint(id))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// GetVillages обрабатывает запрос на получение списка деревень
func (c *CustomerController) GetVillages(w http.ResponseWriter, r *http.Request) {
	villages, err := c.customerService.GetVillages()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, villages)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *CustomerController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/customers", c.CreateCustomer).Methods("POST")
	router.HandleFunc("/customers", c.GetCustomers).Methods("GET")
	router.HandleFunc("/customers/villages", c.GetVillages).Methods("GET")
	router.HandleFunc("/customers/{id:[0-9]+}", c.GetCustomer).Methods("GET")
	router.HandleFunc("/customers/{id:[0-9]+}", c.UpdateCustomer).Methods("PUT")
	router.HandleFunc("/customers/{id:[0-9]+}", c.DeleteCustomer).Methods("DELETE")
}
