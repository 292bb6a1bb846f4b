package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 2, cfg.Pipeline.RunHour)
	assert.Equal(t, 0, cfg.Pipeline.RunMinute)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Pipeline.RetryDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKETING_HTTP_ADDR", ":9090")
	t.Setenv("MARKETING_DATABASE__HOST", "db.internal")
	t.Setenv("MARKETING_PIPELINE__MAX_ATTEMPTS", "5")
	t.Setenv("MARKETING_PIPELINE__RETRY_DELAY", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Pipeline.RetryDelay)

	// Незатронутые значения остаются по умолчанию
	assert.Equal(t, 2, cfg.Pipeline.RunHour)
}

func TestLoad_SingleUnderscoreDoesNotNest(t *testing.T) {
	// Одиночное подчеркивание не разделяет уровни вложенности:
	// database.host задается только через MARKETING_DATABASE__HOST
	t.Setenv("MARKETING_DATABASE_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("http_addr: \":7070\"\npipeline:\n  run_hour: 3\n  run_minute: 30\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	t.Setenv("MARKETING_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 3, cfg.Pipeline.RunHour)
	assert.Equal(t, 30, cfg.Pipeline.RunMinute)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":7070\"\n"), 0644))

	t.Setenv("MARKETING_CONFIG", path)
	t.Setenv("MARKETING_HTTP_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	// Переменные окружения имеют приоритет над файлом
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "час запуска вне диапазона", key: "MARKETING_PIPELINE__RUN_HOUR", value: "25"},
		{name: "минута запуска вне диапазона", key: "MARKETING_PIPELINE__RUN_MINUTE", value: "75"},
		{name: "нулевое количество попыток", key: "MARKETING_PIPELINE__MAX_ATTEMPTS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
