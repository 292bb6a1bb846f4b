// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/LilVoxy/coursework_marketing/config"
	_ "github.com/go-sql-driver/mysql"
)

// ConnectDatabase устанавливает подключение к базе маркетинговых данных
func ConnectDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	// Устанавливаем соединение с базой данных
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		log.Printf("❌ Ошибка подключения к БД: %v", err)
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Printf("❌ Ошибка проверки соединения с БД: %v", err)
		return nil, fmt.Errorf("не удалось установить соединение с базой данных: %w", err)
	}

	// Устанавливаем параметры пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Успешное подключение к базе данных")

	// Проверяем существование необходимых таблиц
	if err := createTablesIfNotExist(db); err != nil {
		log.Printf("❌ Ошибка создания таблиц: %v", err)
		return nil, err
	}

	return db, nil
}

// createTablesIfNotExist создает необходимые таблицы, если они еще не существуют
func createTablesIfNotExist(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			segment VARCHAR(100) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) DEFAULT '',
			price DECIMAL(10,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INT AUTO_INCREMENT PRIMARY KEY,
			client_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			total DECIMAL(12,2) NOT NULL DEFAULT 0,
			sale_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (client_id) REFERENCES clients(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
		`CREATE TABLE IF NOT EXISTS stock (
			id INT AUTO_INCREMENT PRIMARY KEY,
			product_id INT NOT NULL UNIQUE,
			quantity INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			kind VARCHAR(100) DEFAULT '',
			format VARCHAR(16) DEFAULT '',
			url VARCHAR(512) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS raw_records (
			id INT AUTO_INCREMENT PRIMARY KEY,
			source_id INT NOT NULL,
			origin VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			format VARCHAR(16) NOT NULL DEFAULT 'unknown',
			ingested_at TIMESTAMP NOT NULL,
			FOREIGN KEY (source_id) REFERENCES sources(id)
		)`,
		`CREATE TABLE IF NOT EXISTS normalized_records (
			id INT AUTO_INCREMENT PRIMARY KEY,
			system_id VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL,
			value DOUBLE NOT NULL DEFAULT 0,
			content TEXT NOT NULL,
			raw_record_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NULL,
			status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
			records_processed INT DEFAULT 0,
			records_dropped INT DEFAULT 0,
			warnings INT DEFAULT 0,
			error_message TEXT,
			execution_time_seconds FLOAT
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблицы: %w", err)
		}
	}

	log.Println("✅ Все необходимые таблицы существуют")
	return nil
}
