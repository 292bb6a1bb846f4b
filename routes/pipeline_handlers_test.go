// routes/pipeline_handlers_test.go
package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_marketing/pipeline"
	"github.com/LilVoxy/coursework_marketing/utils"
)

// stuckStorage удерживает запуск пайплайна в стадии выгрузки до разрешения
type stuckStorage struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stuckStorage) GetPendingRawRecords() ([]pipeline.RawRecord, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return nil, nil
}

func (s *stuckStorage) SaveNormalizedRecords(records []pipeline.NormalizedRecord) error {
	return nil
}

func TestRunPipelineHandler(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	storage := &stuckStorage{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	orchestrator := pipeline.NewOrchestrator(storage, nil, nil, " [метка]", utils.NewPipelineLogger(false))
	handler := RunPipelineHandler(orchestrator)

	done := make(chan error, 1)
	go func() {
		done <- orchestrator.Execute()
	}()

	// Дожидаемся, пока запуск начнет выполняться
	<-storage.entered

	// Ручной запуск поверх идущего отклоняется со статусом 409
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/pipeline/run", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(storage.release)
	require.NoError(t, <-done)

	// После завершения ручной запуск снова принимается
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/pipeline/run", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
