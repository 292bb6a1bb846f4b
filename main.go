// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/coursework_marketing/alerts"
	"github.com/LilVoxy/coursework_marketing/auth"
	"github.com/LilVoxy/coursework_marketing/backup"
	"github.com/LilVoxy/coursework_marketing/config"
	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/events"
	"github.com/LilVoxy/coursework_marketing/pipeline"
	"github.com/LilVoxy/coursework_marketing/reports"
	"github.com/LilVoxy/coursework_marketing/routes"
	"github.com/LilVoxy/coursework_marketing/utils"
	"github.com/LilVoxy/coursework_marketing/websocket"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
)

func main() {
	fmt.Println("Запуск сервиса маркетинговых данных...")

	// Загружаем конфигурацию (defaults -> yaml -> переменные окружения)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Не удалось загрузить конфигурацию: %v", err)
	}

	logger := utils.NewPipelineLogger(cfg.Pipeline.EnableDetailedLogging)

	// Инициализация базы данных
	db, err := database.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}

	// Контекст жизненного цикла фоновых компонентов
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Шина событий
	bus := events.NewBus()

	// Репозитории
	clients := database.NewClientRepository(db)
	products := database.NewProductRepository(db)
	sales := database.NewSaleRepository(db)
	stock := database.NewStockRepository(db)
	sources := database.NewSourceRepository(db)
	rawRecords := database.NewRawRecordRepository(db)
	normalized := database.NewNormalizedRecordRepository(db)
	runs := database.NewPipelineRunRepository(db)

	// Менеджер WebSocket для уведомлений дашбордов
	wsManager := websocket.NewManager()
	go wsManager.Run(ctx)
	go wsManager.Listen(ctx, bus)

	// Сервис Excel-отчетов: формирует отчет после каждой успешной загрузки
	reportService := reports.NewService(sales, normalized, cfg.Reports.Dir, logger)
	go reportService.Listen(ctx, bus)

	// Сервис резервного копирования справочников
	backupService := backup.NewService(db, cfg.Backup.Dir, logger, bus)
	if cfg.Backup.Enabled {
		go backupService.StartScheduler(ctx, cfg.Backup.Interval)
	}

	// Оркестратор и планировщик ночного пайплайна
	storage := database.NewPipelineStorage(db)
	orchestrator := pipeline.NewOrchestrator(storage, runs, bus, cfg.Pipeline.EnrichmentMarker, logger)
	alerter := alerts.NewLogAlerter(logger, cfg.Pipeline.AlertFile)
	scheduler := pipeline.NewScheduler(
		orchestrator,
		alerter,
		logger,
		cfg.Pipeline.RunHour,
		cfg.Pipeline.RunMinute,
		cfg.Pipeline.MaxAttempts,
		cfg.Pipeline.RetryDelay,
	)
	go scheduler.Run(ctx)

	// JWT-менеджер
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, routes.Dependencies{
		JWT:          cfg.JWT,
		Tokens:       tokens,
		Clients:      clients,
		Products:     products,
		Sales:        sales,
		Stock:        stock,
		Sources:      sources,
		RawRecords:   rawRecords,
		Runs:         runs,
		Orchestrator: orchestrator,
		Reports:      reportService,
		Backups:      backupService,
		WSManager:    wsManager,
	})

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	// Останавливаем фоновые компоненты (планировщик, WebSocket, отчеты)
	cancel()

	// Корректно завершаем HTTP-сервер
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка при остановке сервера: %v", err)
	}

	// Закрываем соединение с базой данных
	if err := db.Close(); err != nil {
		log.Printf("❌ Ошибка закрытия соединения с БД: %v", err)
	} else {
		log.Println("✅ Соединение с БД закрыто")
	}

	log.Println("👋 Сервис остановлен")
}
