// routes/api_routes.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/LilVoxy/coursework_marketing/auth"
	"github.com/LilVoxy/coursework_marketing/backup"
	"github.com/LilVoxy/coursework_marketing/config"
	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/middleware"
	"github.com/LilVoxy/coursework_marketing/pipeline"
	"github.com/LilVoxy/coursework_marketing/reports"
	"github.com/LilVoxy/coursework_marketing/websocket"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies содержит зависимости HTTP-обработчиков
type Dependencies struct {
	JWT          config.JWTConfig
	Tokens       *auth.TokenManager
	Clients      *database.ClientRepository
	Products     *database.ProductRepository
	Sales        *database.SaleRepository
	Stock        *database.StockRepository
	Sources      *database.SourceRepository
	RawRecords   *database.RawRecordRepository
	Runs         *database.PipelineRunRepository
	Orchestrator *pipeline.Orchestrator
	Reports      *reports.Service
	Backups      *backup.Service
	WSManager    *websocket.Manager
}

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, deps Dependencies) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket-уведомления дашбордов
	router.HandleFunc("/ws", deps.WSManager.HandleConnections)

	// Метрики Prometheus
	router.Handle("/metrics", promhttp.Handler())

	// Аутентификация (без проверки токена)
	router.HandleFunc("/api/login", LoginHandler(deps.JWT, deps.Tokens)).Methods("POST", "OPTIONS")

	// Все остальные API-маршруты требуют действительный JWT-токен
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(deps.Tokens))

	// API клиентов
	api.HandleFunc("/clients", GetClientsHandler(deps.Clients)).Methods("GET", "OPTIONS")
	api.HandleFunc("/clients", CreateClientHandler(deps.Clients)).Methods("POST")
	api.HandleFunc("/clients/{id}", GetClientHandler(deps.Clients)).Methods("GET", "OPTIONS")
	api.HandleFunc("/clients/{id}", UpdateClientHandler(deps.Clients)).Methods("PUT")
	api.HandleFunc("/clients/{id}", DeleteClientHandler(deps.Clients)).Methods("DELETE")

	// API товаров
	api.HandleFunc("/products", GetProductsHandler(deps.Products)).Methods("GET", "OPTIONS")
	api.HandleFunc("/products", CreateProductHandler(deps.Products)).Methods("POST")
	api.HandleFunc("/products/{id}", GetProductHandler(deps.Products)).Methods("GET", "OPTIONS")
	api.HandleFunc("/products/{id}", UpdateProductHandler(deps.Products)).Methods("PUT")
	api.HandleFunc("/products/{id}", DeleteProductHandler(deps.Products)).Methods("DELETE")

	// API продаж
	api.HandleFunc("/sales", GetSalesHandler(deps.Sales)).Methods("GET", "OPTIONS")
	api.HandleFunc("/sales", CreateSaleHandler(deps.Sales)).Methods("POST")
	api.HandleFunc("/sales/{id}", GetSaleHandler(deps.Sales)).Methods("GET", "OPTIONS")
	api.HandleFunc("/sales/{id}", DeleteSaleHandler(deps.Sales)).Methods("DELETE")

	// API складских остатков
	api.HandleFunc("/stock", GetStockHandler(deps.Stock)).Methods("GET", "OPTIONS")
	api.HandleFunc("/stock/{productId}", UpsertStockHandler(deps.Stock)).Methods("PUT")

	// API источников данных
	api.HandleFunc("/sources", GetSourcesHandler(deps.Sources)).Methods("GET", "OPTIONS")
	api.HandleFunc("/sources", CreateSourceHandler(deps.Sources)).Methods("POST")
	api.HandleFunc("/sources/{id}", GetSourceHandler(deps.Sources)).Methods("GET", "OPTIONS")
	api.HandleFunc("/sources/{id}", UpdateSourceHandler(deps.Sources)).Methods("PUT")
	api.HandleFunc("/sources/{id}", DeleteSourceHandler(deps.Sources)).Methods("DELETE")

	// Прием сырых данных
	api.HandleFunc("/raw", IngestRawHandler(deps.Sources, deps.RawRecords)).Methods("POST")

	// Управление пайплайном
	api.HandleFunc("/pipeline/status", PipelineStatusHandler(deps.Runs, deps.Orchestrator)).Methods("GET", "OPTIONS")
	api.HandleFunc("/pipeline/run", RunPipelineHandler(deps.Orchestrator)).Methods("POST")

	// Отчеты
	api.HandleFunc("/reports/sales", DownloadReportHandler(deps.Reports)).Methods("GET", "OPTIONS")

	// Резервное копирование
	api.HandleFunc("/admin/backup", CreateBackupHandler(deps.Backups)).Methods("POST")
}

// writeJSON кодирует и отправляет JSON-ответ
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Ошибка при кодировании JSON: %v", err)
	}
}
