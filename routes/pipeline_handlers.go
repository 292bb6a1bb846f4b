// routes/pipeline_handlers.go
package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/pipeline"
)

// PipelineStatusResponse структура ответа о состоянии пайплайна
type PipelineStatusResponse struct {
	State string                 `json:"state"`
	Runs  []database.PipelineRun `json:"runs"`
}

// PipelineStatusHandler возвращает состояние оркестратора и последние запуски
func PipelineStatusHandler(runs *database.PipelineRunRepository, orchestrator *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := runs.GetRecentRuns(10)
		if err != nil {
			log.Printf("❌ Ошибка при запросе журнала запусков: %v", err)
			http.Error(w, "Ошибка при получении журнала запусков", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, PipelineStatusResponse{
			State: orchestrator.State().String(),
			Runs:  recent,
		})
	}
}

// RunPipelineHandler запускает пайплайн вне расписания (ручной запуск)
func RunPipelineHandler(orchestrator *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("⚠️ Запрошен ручной запуск пайплайна")

		if err := orchestrator.Execute(); err != nil {
			// Ручной запуск не должен накладываться на уже идущий
			if errors.Is(err, pipeline.ErrAlreadyRunning) {
				http.Error(w, "Пайплайн уже выполняется", http.StatusConflict)
				return
			}

			log.Printf("❌ Ошибка при ручном запуске пайплайна: %v", err)
			http.Error(w, "Ошибка при выполнении пайплайна", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		log.Println("✅ Ручной запуск пайплайна завершен")
	}
}
