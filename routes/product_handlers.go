// routes/product_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/gorilla/mux"
)

// ProductsResponse структура ответа API для списка товаров
type ProductsResponse struct {
	Products []database.Product `json:"products"`
}

// GetProductsHandler обрабатывает запросы на получение списка товаров
func GetProductsHandler(repo *database.ProductRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := repo.GetAll()
		if err != nil {
			log.Printf("❌ Ошибка при запросе товаров: %v", err)
			http.Error(w, "Ошибка при получении списка товаров", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ProductsResponse{Products: products})
		log.Printf("✅ Отправлен список из %d товаров", len(products))
	}
}

// GetProductHandler обрабатывает запросы на получение одного товара
func GetProductHandler(repo *database.ProductRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID товара", http.StatusBadRequest)
			return
		}

		product, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе товара %d: %v", id, err)
			http.Error(w, "Ошибка при получении товара", http.StatusInternalServerError)
			return
		}

		if product == nil {
			http.Error(w, "Товар не найден", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

// CreateProductHandler обрабатывает запросы на создание товара
func CreateProductHandler(repo *database.ProductRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product database.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		if product.Name == "" {
			http.Error(w, "Поле name обязательно", http.StatusBadRequest)
			return
		}

		id, err := repo.Create(product)
		if err != nil {
			log.Printf("❌ Ошибка при создании товара: %v", err)
			http.Error(w, "Ошибка при создании товара", http.StatusInternalServerError)
			return
		}

		product.ID = id
		writeJSON(w, http.StatusCreated, product)
		log.Printf("✅ Создан товар %d", id)
	}
}

// UpdateProductHandler обрабатывает запросы на обновление товара
func UpdateProductHandler(repo *database.ProductRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID товара", http.StatusBadRequest)
			return
		}

		var product database.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
		product.ID = id

		existing, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе товара %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении товара", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.Error(w, "Товар не найден", http.StatusNotFound)
			return
		}

		if err := repo.Update(product); err != nil {
			log.Printf("❌ Ошибка при обновлении товара %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении товара", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, product)
		log.Printf("✅ Обновлен товар %d", id)
	}
}

// DeleteProductHandler обрабатывает запросы на удаление товара
func DeleteProductHandler(repo *database.ProductRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID товара", http.StatusBadRequest)
			return
		}

		if err := repo.Delete(id); err != nil {
			log.Printf("❌ Ошибка при удалении товара %d: %v", id, err)
			http.Error(w, "Ошибка при удалении товара", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅ Удален товар %d", id)
	}
}
