package main

import (
	"agropos/config"
	"agropos/controllers"
	"agropos/database"
	"agropos/middleware"
	"agropos/services"
	"agropos/utils"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthHandler отвечает на проверки работоспособности
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func initReminderScheduler(ledger *services.LedgerService, products *services.ProductService, email *services.EmailService, cfg *config.Config) {
	interval := time.Duration(cfg.Scheduler.ReminderIntervalHours) * time.Hour

	// Создаем планировщик напоминаний
	scheduler := services.NewReminderSchedulerService(ledger, products, email, interval)

	// Запускаем планировщик
	scheduler.Start()
	log.Println("Планировщик напоминаний запущен")
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.MetricsMiddleware)

	// Служебные маршруты
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Общий мьютекс сериализует мутации долгов между кассой и платежами
	var ledgerMu sync.Mutex

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(db, cfg)
	debtController := controllers.NewDebtController(db, emailService, &ledgerMu)
	productController := controllers.NewProductController(db)
	customerController := controllers.NewCustomerController(db)
	saleController := controllers.NewSaleController(db, debtController.LedgerService())
	purchaseController := controllers.NewPurchaseController(db)
	reportController := controllers.NewReportController(db, debtController.LedgerService())
	backupController := controllers.NewBackupController(db, cfg.BackupHMACKey)

	// Запускаем планировщик напоминаний
	initReminderScheduler(debtController.LedgerService(), productController.ProductService(), emailService, cfg)

	// Публичные маршруты для аутентификации с ограничением частоты
	authLimiter := utils.NewRateLimiter(10, time.Minute)
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.Use(middleware.RateLimitMiddleware(authLimiter))
	auth.HandleFunc("/signUp", authController.SignUp).Methods("POST")
	auth.HandleFunc("/signIn", authController.SignIn).Methods("POST")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	protected.Use(middleware.LoggingMiddleware)

	debtController.RegisterRoutes(protected)
	productController.RegisterRoutes(protected)
	customerController.RegisterRoutes(protected)
	saleController.RegisterRoutes(protected)
	purchaseController.RegisterRoutes(protected)
	reportController.RegisterRoutes(protected)

	// Резервное копирование доступно только администратору
	admin := router.PathPrefix("/api").Subrouter()
	admin.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.Use(middleware.LoggingMiddleware)

	backupController.RegisterRoutes(admin)

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
