// routes/stock_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/gorilla/mux"
)

// StockResponse структура ответа API для складских остатков
type StockResponse struct {
	Stock []database.StockItem `json:"stock"`
}

// UpsertStockRequest структура запроса на обновление остатка
type UpsertStockRequest struct {
	Quantity int `json:"quantity"`
}

// GetStockHandler обрабатывает запросы на получение складских остатков
func GetStockHandler(repo *database.StockRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.GetAll()
		if err != nil {
			log.Printf("❌ Ошибка при запросе складских остатков: %v", err)
			http.Error(w, "Ошибка при получении складских остатков", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, StockResponse{Stock: items})
	}
}

// UpsertStockHandler обрабатывает запросы на обновление остатка товара
func UpsertStockHandler(repo *database.StockRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := strconv.Atoi(mux.Vars(r)["productId"])
		if err != nil {
			http.Error(w, "Неверный формат ID товара", http.StatusBadRequest)
			return
		}

		var req UpsertStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if req.Quantity < 0 {
			http.Error(w, "Количество не может быть отрицательным", http.StatusBadRequest)
			return
		}

		if err := repo.Upsert(productID, req.Quantity); err != nil {
			log.Printf("❌ Ошибка при обновлении остатка товара %d: %v", productID, err)
			http.Error(w, "Ошибка при обновлении остатка", http.StatusInternalServerError)
			return
		}

		item, err := repo.GetByProduct(productID)
		if err != nil || item == nil {
			log.Printf("❌ Ошибка при чтении обновленного остатка товара %d: %v", productID, err)
			http.Error(w, "Ошибка при чтении обновленного остатка", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, item)
		log.Printf("✅ Обновлен остаток товара %d: %d", productID, req.Quantity)
	}
}
