// routes/sale_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/gorilla/mux"
)

// SalesResponse структура ответа API для списка продаж
type SalesResponse struct {
	Sales []database.Sale `json:"sales"`
}

// CreateSaleRequest структура запроса на создание продажи
type CreateSaleRequest struct {
	ClientID  int     `json:"clientId"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	SaleDate  string  `json:"saleDate"` // формат: 2006-01-02
}

// GetSalesHandler обрабатывает запросы на получение списка продаж
func GetSalesHandler(repo *database.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := repo.GetAll()
		if err != nil {
			log.Printf("❌ Ошибка при запросе продаж: %v", err)
			http.Error(w, "Ошибка при получении списка продаж", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, SalesResponse{Sales: sales})
		log.Printf("✅ Отправлен список из %d продаж", len(sales))
	}
}

// GetSaleHandler обрабатывает запросы на получение одной продажи
func GetSaleHandler(repo *database.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID продажи", http.StatusBadRequest)
			return
		}

		sale, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе продажи %d: %v", id, err)
			http.Error(w, "Ошибка при получении продажи", http.StatusInternalServerError)
			return
		}

		if sale == nil {
			http.Error(w, "Продажа не найдена", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

// CreateSaleHandler обрабатывает запросы на создание продажи
func CreateSaleHandler(repo *database.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if req.ClientID == 0 || req.ProductID == 0 || req.Quantity <= 0 {
			http.Error(w, "Поля clientId, productId и quantity обязательны", http.StatusBadRequest)
			return
		}

		saleDate, err := time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			http.Error(w, "Неверный формат даты продажи (ожидается 2006-01-02)", http.StatusBadRequest)
			return
		}

		sale := database.Sale{
			ClientID:  req.ClientID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Total:     req.Total,
			SaleDate:  saleDate,
		}

		id, err := repo.Create(sale)
		if err != nil {
			log.Printf("❌ Ошибка при создании продажи: %v", err)
			http.Error(w, "Ошибка при создании продажи", http.StatusInternalServerError)
			return
		}

		sale.ID = id
		writeJSON(w, http.StatusCreated, sale)
		log.Printf("✅ Создана продажа %d", id)
	}
}

// DeleteSaleHandler обрабатывает запросы на удаление продажи
func DeleteSaleHandler(repo *database.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID продажи", http.StatusBadRequest)
			return
		}

		if err := repo.Delete(id); err != nil {
			log.Printf("❌ Ошибка при удалении продажи %d: %v", id, err)
			http.Error(w, "Ошибка при удалении продажи", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅ Удалена продажа %d", id)
	}
}
