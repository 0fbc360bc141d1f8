package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// ProductController обрабатывает запросы, связанные с каталогом товаров
type ProductController struct {
	productService *services.ProductService
}

// NewProductController создает новый экземпляр ProductController
func NewProductController(db *database.Database) *ProductController {
	return &ProductController{
		productService: services.NewProductService(db.DB),
	}
}

// ProductService возвращает сервис каталога
func (c *ProductController) ProductService() *services.ProductService {
	return c.productService
}

// CreateProduct обрабатывает запрос на создание товара
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto services.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := c.productService.Create(dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct обрабатывает запрос на изменение товара
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var dto services.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := c.productService.Update(uint(id), dto)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct обрабатывает запрос на удаление товара
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := c.productService.Delete(uint(id)); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProducts обрабатывает запрос на получение списка товаров.
// Поддерживает поиск по названию, действующему веществу и штрихкоду.
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		products, err := c.productService.Search(query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, products)
		return
	}

	products, err := c.productService.GetAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct обрабатывает запрос на получение товара по ID
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := c.productService.GetByID(uint(id))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetByBarcode обрабатывает запрос поиска товара по штрихкоду (сканер кассы)
func (c *ProductController) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	product, err := c.productService.GetByBarcode(vars["barcode"])
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetLowStock обрабатывает запрос на получение товаров с низким остатком
func (c *ProductController) GetLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.productService.GetLowStock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// AdjustStock обрабатывает запрос на корректировку остатка
func (c *ProductController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := c.productService.AdjustStock(uint(id), req.Delta)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *ProductController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", c.CreateProduct).Methods("POST")
	router.HandleFunc("/products", c.GetProducts).Methods("GET")
	router.HandleFunc("/products/low-stock", c.GetLowStock).Methods("GET")
	router.HandleFunc("/products/barcode/{barcode}", c.GetByBarcode).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", c.GetProduct).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", c.UpdateProduct).Methods("PUT")
	router.HandleFunc("/products/{id:[0-9]+}", c.DeleteProduct).Methods("DELETE")
	router.HandleFunc("/products/{id:[0-9]+}/stock", c.AdjustStock).Methods("PUT")
}
