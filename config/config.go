package config

import (
	"time"
)

// Config содержит полную конфигурацию сервиса маркетинговых данных
type Config struct {
	// Адрес HTTP-сервера
	HTTPAddr string `koanf:"http_addr"`

	// Конфигурация подключения к базе данных
	Database DatabaseConfig `koanf:"database"`

	// Конфигурация JWT-аутентификации
	JWT JWTConfig `koanf:"jwt"`

	// Конфигурация ночного пайплайна
	Pipeline PipelineConfig `koanf:"pipeline"`

	// Конфигурация отчетов
	Reports ReportsConfig `koanf:"reports"`

	// Конфигурация резервного копирования
	Backup BackupConfig `koanf:"backup"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `koanf:"driver"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
}

// JWTConfig содержит настройки выдачи и проверки JWT-токенов
type JWTConfig struct {
	Secret        string        `koanf:"secret"`
	TTL           time.Duration `koanf:"ttl"`
	AdminLogin    string        `koanf:"admin_login"`
	AdminPassword string        `koanf:"admin_password"`
}

// PipelineConfig содержит настройки планировщика и стадий пайплайна
type PipelineConfig struct {
	// Час и минута ежедневного запуска (локальное время)
	RunHour   int `koanf:"run_hour"`
	RunMinute int `koanf:"run_minute"`

	// Максимальное количество попыток запуска (включая первую)
	MaxAttempts int `koanf:"max_attempts"`

	// Задержка между повторными попытками
	RetryDelay time.Duration `koanf:"retry_delay"`

	// Маркер, добавляемый стадией обогащения к содержимому записи
	EnrichmentMarker string `koanf:"enrichment_marker"`

	// Включение/отключение детального логирования
	EnableDetailedLogging bool `koanf:"enable_detailed_logging"`

	// Файл, в который пишутся критические оповещения
	AlertFile string `koanf:"alert_file"`
}

// ReportsConfig содержит настройки генерации Excel-отчетов
type ReportsConfig struct {
	// Каталог, в который сохраняются сгенерированные отчеты
	Dir string `koanf:"dir"`
}

// BackupConfig содержит настройки резервного копирования
type BackupConfig struct {
	Enabled bool `koanf:"enabled"`

	// Интервал между резервными копиями
	Interval time.Duration `koanf:"interval"`

	// Каталог для файлов резервных копий
	Dir string `koanf:"dir"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: ":8080",
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "",
			DBName:   "marketingdb",
		},
		JWT: JWTConfig{
			Secret:        "change-me",
			TTL:           24 * time.Hour,
			AdminLogin:    "admin",
			AdminPassword: "admin",
		},
		Pipeline: PipelineConfig{
			RunHour:               2,
			RunMinute:             0,
			MaxAttempts:           3,
			RetryDelay:            10 * time.Minute,
			EnrichmentMarker:      " [enriched:marketing-hub]",
			EnableDetailedLogging: true,
			AlertFile:             "alerts.log",
		},
		Reports: ReportsConfig{
			Dir: "reports",
		},
		Backup: BackupConfig{
			Enabled:  true,
			Interval: 6 * time.Hour,
			Dir:      "backups",
		},
	}
}
