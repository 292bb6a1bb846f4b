// database/product.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Product представляет товар в базе маркетинговых данных
type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductRepository предоставляет операции над товарами
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository создает новый экземпляр ProductRepository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll возвращает все товары
func (r *ProductRepository) GetAll() ([]Product, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, price, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе товаров: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Price, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании товара: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по товарам: %w", err)
	}

	return products, nil
}

// GetByID возвращает товар по его ID.
// Если товар не найден, возвращается (nil, nil).
func (r *ProductRepository) GetByID(id int) (*Product, error) {
	var product Product
	err := r.db.QueryRow(`
		SELECT id, name, category, price, created_at
		FROM products
		WHERE id = ?
	`, id).Scan(&product.ID, &product.Name, &product.Category, &product.Price, &product.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при запросе товара %d: %w", id, err)
	}

	return &product, nil
}

// Create создает новый товар и возвращает его ID
func (r *ProductRepository) Create(product Product) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO products (name, category, price)
		VALUES (?, ?, ?)
	`, product.Name, product.Category, product.Price)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании товара: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданного товара: %w", err)
	}

	return int(id), nil
}

// Update обновляет данные товара
func (r *ProductRepository) Update(product Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET name = ?, category = ?, price = ?
		WHERE id = ?
	`, product.Name, product.Category, product.Price, product.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении товара %d: %w", product.ID, err)
	}

	return nil
}

// Delete удаляет товар по ID
func (r *ProductRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении товара %d: %w", id, err)
	}

	return nil
}
