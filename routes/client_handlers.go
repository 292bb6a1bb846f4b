// routes/client_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/gorilla/mux"
)

// ClientsResponse структура ответа API для списка клиентов
type ClientsResponse struct {
	Clients []database.Client `json:"clients"`
}

// GetClientsHandler обрабатывает запросы на получение списка клиентов
func GetClientsHandler(repo *database.ClientRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := repo.GetAll()
		if err != nil {
			log.Printf("❌ Ошибка при запросе клиентов: %v", err)
			http.Error(w, "Ошибка при получении списка клиентов", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ClientsResponse{Clients: clients})
		log.Printf("✅ Отправлен список из %d клиентов", len(clients))
	}
}

// GetClientHandler обрабатывает запросы на получение одного клиента
func GetClientHandler(repo *database.ClientRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID клиента", http.StatusBadRequest)
			return
		}

		client, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе клиента %d: %v", id, err)
			http.Error(w, "Ошибка при получении клиента", http.StatusInternalServerError)
			return
		}

		if client == nil {
			http.Error(w, "Клиент не найден", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, client)
	}
}

// CreateClientHandler обрабатывает запросы на создание клиента
func CreateClientHandler(repo *database.ClientRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var client database.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if client.Name == "" || client.Email == "" {
			http.Error(w, "Поля name и email обязательны", http.StatusBadRequest)
			return
		}

		id, err := repo.Create(client)
		if err != nil {
			log.Printf("❌ Ошибка при создании клиента: %v", err)
			http.Error(w, "Ошибка при создании клиента", http.StatusInternalServerError)
			return
		}

		client.ID = id
		writeJSON(w, http.StatusCreated, client)
		log.Printf("✅ Создан клиент %d", id)
	}
}

// UpdateClientHandler обрабатывает запросы на обновление клиента
func UpdateClientHandler(repo *database.ClientRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID клиента", http.StatusBadRequest)
			return
		}

		var client database.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
		client.ID = id

		existing, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе клиента %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении клиента", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.Error(w, "Клиент не найден", http.StatusNotFound)
			return
		}

		if err := repo.Update(client); err != nil {
			log.Printf("❌ Ошибка при обновлении клиента %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении клиента", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, client)
		log.Printf("✅ Обновлен клиент %d", id)
	}
}

// DeleteClientHandler обрабатывает запросы на удаление клиента
func DeleteClientHandler(repo *database.ClientRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID клиента", http.StatusBadRequest)
			return
		}

		if err := repo.Delete(id); err != nil {
			log.Printf("❌ Ошибка при удалении клиента %d: %v", id, err)
			http.Error(w, "Ошибка при удалении клиента", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅ Удален клиент %d", id)
	}
}
