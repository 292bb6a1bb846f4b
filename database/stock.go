// database/stock.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// StockItem представляет складской остаток товара
type StockItem struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StockRepository предоставляет операции над складскими остатками
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository создает новый экземпляр StockRepository
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetAll возвращает все складские остатки
func (r *StockRepository) GetAll() ([]StockItem, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, quantity, updated_at
		FROM stock
		ORDER BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе складских остатков: %w", err)
	}
	defer rows.Close()

	var items []StockItem
	for rows.Next() {
		var item StockItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании складского остатка: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по складским остаткам: %w", err)
	}

	return items, nil
}

// GetByProduct возвращает остаток указанного товара.
// Если записи нет, возвращается (nil, nil).
func (r *StockRepository) GetByProduct(productID int) (*StockItem, error) {
	var item StockItem
	err := r.db.QueryRow(`
		SELECT id, product_id, quantity, updated_at
		FROM stock
		WHERE product_id = ?
	`, productID).Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при запросе остатка товара %d: %w", productID, err)
	}

	return &item, nil
}

// Upsert создает или обновляет остаток товара
func (r *StockRepository) Upsert(productID, quantity int) error {
	_, err := r.db.Exec(`
		INSERT INTO stock (product_id, quantity)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)
	`, productID, quantity)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении остатка товара %d: %w", productID, err)
	}

	return nil
}
