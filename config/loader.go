package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load собирает конфигурацию послойно (от низшего приоритета к высшему):
//  1. значения по умолчанию (DefaultConfig)
//  2. YAML-файл, если задана переменная MARKETING_CONFIG
//  3. переменные окружения с префиксом MARKETING_
//     (MARKETING_DATABASE__HOST -> database.host)
func Load() (*Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")

	// Загружаем конфигурацию из файла, если он указан
	if path := os.Getenv("MARKETING_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Переменные окружения: MARKETING_HTTP_ADDR, MARKETING_DATABASE__HOST, ...
	// Одиночное подчеркивание сохраняется в составных ключах (http_addr),
	// двойное разделяет уровни вложенности (database__host -> database.host).
	envProvider := env.Provider("MARKETING_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "MARKETING_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Базовая валидация
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http_addr не должен быть пустым")
	}
	if cfg.Pipeline.RunHour < 0 || cfg.Pipeline.RunHour > 23 {
		return nil, errors.New("pipeline.run_hour должен быть в диапазоне 0-23")
	}
	if cfg.Pipeline.RunMinute < 0 || cfg.Pipeline.RunMinute > 59 {
		return nil, errors.New("pipeline.run_minute должен быть в диапазоне 0-59")
	}
	if cfg.Pipeline.MaxAttempts < 1 {
		return nil, errors.New("pipeline.max_attempts должен быть не меньше 1")
	}

	return cfg, nil
}
