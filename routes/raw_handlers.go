// routes/raw_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/pipeline"
)

// IngestRawRequest структура запроса на прием сырой записи
type IngestRawRequest struct {
	SourceID int    `json:"sourceId"`
	Content  string `json:"content"`
}

// IngestRawResponse структура ответа с принятой записью
type IngestRawResponse struct {
	ID     int                   `json:"id"`
	Format pipeline.SourceFormat `json:"format"`
}

// IngestRawHandler обрабатывает прием сырых данных от внешних источников.
// Формат содержимого определяется один раз здесь (по заявленному формату
// источника и форме содержимого) и сохраняется вместе с записью.
func IngestRawHandler(sources *database.SourceRepository, records *database.RawRecordRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IngestRawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if req.SourceID == 0 {
			http.Error(w, "Поле sourceId обязательно", http.StatusBadRequest)
			return
		}

		source, err := sources.GetByID(req.SourceID)
		if err != nil {
			log.Printf("❌ Ошибка при запросе источника %d: %v", req.SourceID, err)
			http.Error(w, "Ошибка при проверке источника", http.StatusInternalServerError)
			return
		}
		if source == nil {
			http.Error(w, "Источник не найден", http.StatusNotFound)
			return
		}

		record := pipeline.RawRecord{
			SourceID:   source.ID,
			Origin:     source.Name,
			Content:    req.Content,
			Format:     pipeline.ResolveFormat(source.Format, req.Content),
			IngestedAt: time.Now(),
		}

		id, err := records.Insert(record)
		if err != nil {
			log.Printf("❌ Ошибка при сохранении сырой записи: %v", err)
			http.Error(w, "Ошибка при сохранении записи", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, IngestRawResponse{ID: id, Format: record.Format})
		log.Printf("✅ Принята сырая запись %d от источника %s (формат %s)", id, source.Name, record.Format)
	}
}
