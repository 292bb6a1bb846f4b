// routes/source_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/gorilla/mux"
)

// SourcesResponse структура ответа API для списка источников
type SourcesResponse struct {
	Sources []database.Source `json:"sources"`
}

// GetSourcesHandler обрабатывает запросы на получение списка источников
func GetSourcesHandler(repo *database.SourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sources, err := repo.GetAll()
		if err != nil {
			log.Printf("❌ Ошибка при запросе источников: %v", err)
			http.Error(w, "Ошибка при получении списка источников", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, SourcesResponse{Sources: sources})
	}
}

// GetSourceHandler обрабатывает запросы на получение одного источника
func GetSourceHandler(repo *database.SourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID источника", http.StatusBadRequest)
			return
		}

		source, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе источника %d: %v", id, err)
			http.Error(w, "Ошибка при получении источника", http.StatusInternalServerError)
			return
		}

		if source == nil {
			http.Error(w, "Источник не найден", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, source)
	}
}

// CreateSourceHandler обрабатывает запросы на создание источника
func CreateSourceHandler(repo *database.SourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var source database.Source
		if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if source.Name == "" {
			http.Error(w, "Поле name обязательно", http.StatusBadRequest)
			return
		}

		id, err := repo.Create(source)
		if err != nil {
			log.Printf("❌ Ошибка при создании источника: %v", err)
			http.Error(w, "Ошибка при создании источника", http.StatusInternalServerError)
			return
		}

		source.ID = id
		writeJSON(w, http.StatusCreated, source)
		log.Printf("✅ Создан источник %d (%s)", id, source.Name)
	}
}

// UpdateSourceHandler обрабатывает запросы на обновление источника
func UpdateSourceHandler(repo *database.SourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID источника", http.StatusBadRequest)
			return
		}

		var source database.Source
		if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
		source.ID = id

		existing, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе источника %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении источника", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.Error(w, "Источник не найден", http.StatusNotFound)
			return
		}

		if err := repo.Update(source); err != nil {
			log.Printf("❌ Ошибка при обновлении источника %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении источника", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, source)
		log.Printf("✅ Обновлен источник %d", id)
	}
}

// DeleteSourceHandler обрабатывает запросы на удаление источника
func DeleteSourceHandler(repo *database.SourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID источника", http.StatusBadRequest)
			return
		}

		if err := repo.Delete(id); err != nil {
			log.Printf("❌ Ошибка при удалении источника %d: %v", id, err)
			http.Error(w, "Ошибка при удалении источника", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅ Удален источник %d", id)
	}
}
